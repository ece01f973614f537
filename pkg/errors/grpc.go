package errors

import (
	"google.golang.org/grpc/status"
)

// ToGRPCStatus는 에러를 gRPC status 에러로 변환합니다
func ToGRPCStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	_, code := GetCodeMapping(CodeOf(err))
	return status.Error(code, err.Error())
}
