package protocol

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResponseCode is a closed set of numeric wire codes, with an escape for
// application-defined custom codes.
type ResponseCode byte

const (
	CodeOK            ResponseCode = 10
	CodeAuthOK        ResponseCode = 11
	CodeParseError    ResponseCode = 20
	CodeInvalidName   ResponseCode = 21
	CodeAlreadyTaken  ResponseCode = 22
	CodeInvalidHeader ResponseCode = 23
	CodeUnauthorized  ResponseCode = 24
	CodeError         ResponseCode = 30
	CodeFatalError    ResponseCode = 31
)

// reservedCodes are the numeric values already assigned in the closed set;
// CustomCode rejects any of these.
var reservedCodes = map[ResponseCode]bool{
	CodeOK: true, CodeAuthOK: true, CodeParseError: true, CodeInvalidName: true,
	CodeAlreadyTaken: true, CodeInvalidHeader: true, CodeUnauthorized: true,
	CodeError: true, CodeFatalError: true,
}

// CustomCode constructs an application-defined response code, rejecting
// values that collide with the closed set of predefined codes.
func CustomCode(v byte) (ResponseCode, error) {
	c := ResponseCode(v)
	if reservedCodes[c] {
		return 0, fmt.Errorf("protocol: custom code %d collides with a reserved code", v)
	}
	return c, nil
}

const timeLayout = "2006-01-02 15:04:05"

// Response is the parsed or constructed form of an outbound frame.
type Response struct {
	Code    ResponseCode
	Version string
	Token   *string
	User    *string
	Time    *time.Time
	Message *string
	Custom  map[string]string
	Varmap  Varmap
}

// ParseResponse decodes a raw frame's text into a Response.
func ParseResponse(f Frame) (*Response, *ParseError) {
	lines := splitLines(trimmedText(f))
	if len(lines) < 1 {
		return nil, newParseError(MissingVersion, "empty frame")
	}
	vm := versionLineRe.FindStringSubmatch(lines[0])
	if vm == nil {
		return nil, newParseError(MissingVersion, lines[0])
	}
	version := vm[1]

	if len(lines) < 2 {
		return nil, newParseError(MissingCode, "no code line")
	}
	key, value, ok := parseKV(lines[1])
	if !ok || key != "Code" {
		return nil, newParseError(MissingCode, lines[1])
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 255 {
		return nil, newParseError(MissingCode, value)
	}

	resp := &Response{
		Code:    ResponseCode(n),
		Version: version,
		Custom:  make(map[string]string),
		Varmap:  NewVarmap(),
	}

	for _, line := range lines[2:] {
		if line == "" {
			continue
		}
		k, v, ok := parseKV(line)
		if !ok {
			return nil, newParseError(InvalidFormat, line)
		}
		switch k {
		case "Token":
			tok := v
			resp.Token = &tok
		case "User":
			u := v
			resp.User = &u
		case "Time":
			t, err := time.Parse(timeLayout, v)
			if err != nil {
				return nil, newParseError(InvalidFormat, v)
			}
			t = t.UTC()
			resp.Time = &t
		case "Message":
			m := v
			resp.Message = &m
		default:
			resp.Custom[k] = v
		}
	}

	return resp, nil
}

// AsFrame serializes the response to wire form. Ordering: version, code,
// token, user, time, custom headers, message. Returns ErrTooLarge if the
// serialized text would not fit in a single Frame (the FatalError path in
// the error-handling design).
func (r *Response) AsFrame() (Frame, error) {
	var b strings.Builder
	b.WriteString("<CHAT \\ ")
	b.WriteString(r.Version)
	b.WriteString(">\n<Code@")
	b.WriteString(strconv.Itoa(int(r.Code)))
	b.WriteString(">\n")
	if r.Token != nil {
		b.WriteString("<Token@")
		b.WriteString(quote(*r.Token))
		b.WriteString(">\n")
	}
	if r.User != nil {
		b.WriteString("<User@")
		b.WriteString(quote(*r.User))
		b.WriteString(">\n")
	}
	if r.Time != nil {
		b.WriteString("<Time@")
		b.WriteString(quote(r.Time.UTC().Format(timeLayout)))
		b.WriteString(">\n")
	}
	for k, v := range r.Custom {
		b.WriteByte('<')
		b.WriteString(k)
		b.WriteByte('@')
		b.WriteString(quote(v))
		b.WriteString(">\n")
	}
	if r.Message != nil {
		b.WriteString("<Message@")
		b.WriteString(quote(*r.Message))
		b.WriteString(">\n")
	}
	if b.Len() > FrameSize {
		return Frame{}, ErrTooLarge
	}
	return stringToFrame(b.String()), nil
}

// ResponseBuilder builds a Response fluently. Build fails if no code has
// been set.
type ResponseBuilder struct {
	resp    Response
	hasCode bool
}

func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{resp: Response{
		Version: SupportedVersion,
		Custom:  make(map[string]string),
		Varmap:  NewVarmap(),
	}}
}

func (b *ResponseBuilder) Code(c ResponseCode) *ResponseBuilder {
	b.resp.Code = c
	b.hasCode = true
	return b
}

func (b *ResponseBuilder) Token(v string) *ResponseBuilder {
	b.resp.Token = &v
	return b
}

func (b *ResponseBuilder) User(v string) *ResponseBuilder {
	b.resp.User = &v
	return b
}

func (b *ResponseBuilder) Time(t time.Time) *ResponseBuilder {
	u := t.UTC()
	b.resp.Time = &u
	return b
}

func (b *ResponseBuilder) Message(v string) *ResponseBuilder {
	b.resp.Message = &v
	return b
}

func (b *ResponseBuilder) Custom(key, value string) *ResponseBuilder {
	b.resp.Custom[key] = value
	return b
}

// Build validates that a code has been set and returns the Response.
func (b *ResponseBuilder) Build() (*Response, error) {
	if !b.hasCode {
		return nil, fmt.Errorf("protocol: response builder missing code")
	}
	resp := b.resp
	return &resp, nil
}
