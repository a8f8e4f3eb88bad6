package responses

// APIError interface for custom API errors
type APIError interface {
	Error() string
	StatusCode() int
}

type NotFoundError struct {
	Msg string
}

func (e NotFoundError) Error() string {
	return e.Msg
}

func (NotFoundError) StatusCode() int {
	return 404
}

type MethodNotAllowedError struct {
	Msg string
}

func (e MethodNotAllowedError) Error() string {
	return e.Msg
}

func (MethodNotAllowedError) StatusCode() int {
	return 405
}
