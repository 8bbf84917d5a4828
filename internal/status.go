package internal

import "strconv"

// Status is one of the HTTP statuses views may emit.
type Status int

const (
	StatusOK                  Status = 200
	StatusMovedPermanently    Status = 301
	StatusTemporaryRedirect   Status = 307
	StatusForbidden           Status = 403
	StatusFileNotFound        Status = 404
	StatusInternalServerError Status = 500
)

var statusNames = map[Status]string{
	StatusOK:                  "OK",
	StatusMovedPermanently:    "Moved Permanently",
	StatusTemporaryRedirect:   "Temporary Redirect",
	StatusForbidden:           "Forbidden",
	StatusFileNotFound:        "File Not Found",
	StatusInternalServerError: "Internal Server Error",
}

// Code returns the numeric status code.
func (s Status) Code() int { return int(s) }

// Name returns the reason phrase, or "" for statuses outside the set.
func (s Status) Name() string { return statusNames[s] }

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// String renders "<code> <name>".
func (s Status) String() string {
	return strconv.Itoa(int(s)) + " " + s.Name()
}
