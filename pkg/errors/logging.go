package errors

import (
	"go.uber.org/zap"
)

// LogError는 에러를 구조화된 로그로 기록합니다.
// 클라이언트 입력 문제(INVALID_ARGUMENT, NOT_FOUND, CONFLICT)는 Warn, 나머지는 Error로 기록합니다
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	code := CodeOf(err)
	allFields := make([]zap.Field, 0, len(fields)+2)
	allFields = append(allFields, zap.Error(err), zap.String("error_code", code))
	allFields = append(allFields, fields...)

	if code == ErrInternal {
		logger.Error(msg, allFields...)
		return
	}
	logger.Warn(msg, allFields...)
}
