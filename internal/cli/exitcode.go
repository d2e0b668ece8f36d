package cli

import (
	"errors"
)

// ExitCode는 pmctl의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitValidation은 입력 형식 오류다.
	ExitValidation ExitCode = 2
	// ExitStorage는 셸 설정 파일 읽기/쓰기 실패다.
	ExitStorage ExitCode = 3
	// ExitAuthFail는 인증 실패 또는 미로그인이다.
	ExitAuthFail ExitCode = 4
	// ExitConfigError는 설정 파일 오류다.
	ExitConfigError ExitCode = 5
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrInvalidAPIKey), errors.Is(err, ErrInvalidWorkspaceID),
		errors.Is(err, ErrInvalidOutput), errors.Is(err, ErrInvalidValue):
		return ExitValidation
	case errors.Is(err, ErrStorage), errors.Is(err, ErrUnsupportedShell):
		return ExitStorage
	case errors.Is(err, ErrRemoteValidation), errors.Is(err, ErrUnauthorized), errors.Is(err, ErrNotAuthenticated):
		return ExitAuthFail
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitGeneral
	}
}
