package internal

import "strconv"

// Scalar is a type a request parameter can be parsed into.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// SessionValue returns the session value stored under key when it has
// type T.
func SessionValue[T any](req *Request, key string) T {
	var zero T
	sess := req.Session()
	if sess == nil {
		return zero
	}
	if v, ok := sess.Get(key).(T); ok {
		return v
	}
	return zero
}

// Query parses the GET parameter name. Missing or unparsable values give
// the zero value.
func Query[T Scalar](req *Request, name string) T {
	v, _ := convertParam[T](req.Get(name))
	return v
}

// QueryDefault parses the GET parameter name, or returns def when it is
// missing or unparsable.
func QueryDefault[T Scalar](req *Request, name string, def T) T {
	if !req.GetExists(name) {
		return def
	}
	v, ok := convertParam[T](req.Get(name))
	if !ok {
		return def
	}
	return v
}

// Form parses the POST parameter name.
func Form[T Scalar](req *Request, name string) T {
	v, _ := convertParam[T](req.Post(name))
	return v
}

// Segment parses path segment i. Out of range segments give
// ErrIndexOutOfBounds; unparsable ones a BadUserInputError.
func Segment[T Scalar](req *Request, i int) (T, error) {
	var zero T
	raw, err := req.URL().Segment(i)
	if err != nil {
		return zero, err
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return zero, &BadUserInputError{Field: "segment " + strconv.Itoa(i), Err: ErrMalformedURL}
	}
	return v, nil
}

func convertParam[T Scalar](raw string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(raw).(T), true
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	}
	return zero, false
}
