package apperr

import "fmt"

// ValidationError - 요청 필드 누락/형식 오류 (HTTP 400)
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation - ValidationError 생성
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError - 존재하지 않는 ID 조회 (HTTP 404)
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFound - NotFoundError 생성
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// SubmissionError - 외부 Job 생성 요청 거절 (업스트림 상태 코드 전달)
type SubmissionError struct {
	Message    string
	StatusCode int
}

func (e *SubmissionError) Error() string {
	return e.Message
}

// GenerationError - 업스트림 생성 실패 (터미널 failed 상태 등, HTTP 500)
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	return e.Message
}

// NewGeneration - GenerationError 생성
func NewGeneration(format string, args ...interface{}) *GenerationError {
	return &GenerationError{Message: fmt.Sprintf(format, args...)}
}

// UnexpectedResponseError - 업스트림 응답이 예상 형식이 아님 (HTTP 500)
type UnexpectedResponseError struct {
	Message string
}

func (e *UnexpectedResponseError) Error() string {
	return e.Message
}
