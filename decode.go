package reshape

import (
	"errors"
	"io"

	eng "github.com/reoring/reshape/internal/engine"
)

// DecodeJSON consumes one JSON value from src and returns it as an ordered
// Value. Object keys keep their input order; a duplicated key keeps its first
// position and its last value. Anything but whitespace after the value is a
// parse error.
func DecodeJSON(src Source, opts ...ParseOpt) (Value, error) {
	opt := lastOpt(opts)
	s := EnforceSource(src, opt)
	tok, err := s.NextToken()
	if err != nil {
		return nil, toIssues(err, s)
	}
	v, err := decodeValue(s, tok)
	if err != nil {
		return nil, toIssues(err, s)
	}
	switch _, err := s.NextToken(); {
	case err == io.EOF:
		return v, nil
	case err != nil:
		return nil, toIssues(err, s)
	default:
		return nil, AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: "unexpected data after top-level value", Offset: s.Location()})
	}
}

// ParseJSON decodes a JSON document held in memory using the current driver.
func ParseJSON(data []byte, opts ...ParseOpt) (Value, error) {
	return DecodeJSON(JSONBytes(data), opts...)
}

// ReadJSON decodes a JSON document from r. When MaxBytes is set the whole
// input (up to MaxBytes+1 bytes) is buffered before decoding; otherwise it
// streams through the current driver.
func ReadJSON(r io.Reader, opts ...ParseOpt) (Value, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return nil, singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > opt.MaxBytes {
			return nil, singleIssue(CodeTruncated, message(CodeTruncated, nil))
		}
		return ParseJSON(data, opts...)
	}
	return DecodeJSON(JSONReader(r), opts...)
}

func decodeValue(src Source, tok Token) (Value, error) {
	switch tok.Kind {
	case TokenBeginObject:
		return decodeObject(src)
	case TokenBeginArray:
		return decodeArray(src)
	case TokenString:
		return String(tok.String), nil
	case TokenNumber:
		return Number(ParseNumber(tok.Number)), nil
	case TokenBool:
		return Bool(tok.Bool), nil
	case TokenNull:
		return Null{}, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObject(src Source) (Value, error) {
	obj := NewObject(0)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEndObject {
			return obj, nil
		}
		if tok.Kind != TokenKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		obj.Set(tok.String, v)
	}
}

func decodeArray(src Source) (Value, error) {
	arr := Array{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func toIssues(err error, src Source) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: message(ie.Code, nil), Cause: err})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: err.Error(), Cause: err, Offset: src.Location()})
}
