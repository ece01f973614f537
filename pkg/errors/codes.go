package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// 공통 에러 코드 정의
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrConflict        = "CONFLICT"
)

// codePair는 프레임워크 간 코드 매핑을 위한 구조체입니다
type codePair struct {
	HTTPStatus int
	GRPCCode   codes.Code
}

var codeMapping = map[string]codePair{
	ErrInternal:        {http.StatusInternalServerError, codes.Internal},
	ErrNotFound:        {http.StatusNotFound, codes.NotFound},
	ErrInvalidArgument: {http.StatusUnprocessableEntity, codes.InvalidArgument},
	ErrConflict:        {http.StatusConflict, codes.AlreadyExists},
}

// GetCodeMapping은 특정 에러 코드에 대한 HTTP 및 gRPC 코드 매핑을 반환합니다
func GetCodeMapping(code string) (int, codes.Code) {
	if pair, ok := codeMapping[code]; ok {
		return pair.HTTPStatus, pair.GRPCCode
	}
	return http.StatusInternalServerError, codes.Internal
}
