package exceptions

import (
	"doccare-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"runtime"
)

// ErrDuplicateDocument is returned by repositories when a unique index rejects an insert.
var ErrDuplicateDocument = errors.New("duplicate document")

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	var customErr *CustomError
	if err != nil && errors.As(err, &customErr) {
		customErr.Locations = append(customErr.Locations, getLocation(3))
		return customErr
	}

	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}

	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(3)},
	}
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(2)},
	}
}

// StatusCodeOf returns the status code carried by err, or 500 when err is not a CustomError.
func StatusCodeOf(err error) int {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return constvars.StatusInternalServerError
}

func IsValidation(err error) bool {
	return err != nil && StatusCodeOf(err) == constvars.StatusBadRequest
}
func IsForbidden(err error) bool { return err != nil && StatusCodeOf(err) == constvars.StatusForbidden }
func IsNotFound(err error) bool  { return err != nil && StatusCodeOf(err) == constvars.StatusNotFound }
func IsConflict(err error) bool  { return err != nil && StatusCodeOf(err) == constvars.StatusConflict }
func IsExpired(err error) bool   { return err != nil && StatusCodeOf(err) == constvars.StatusGone }

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
