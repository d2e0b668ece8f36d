package rcfile

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage는 셸 설정 파일 읽기/쓰기 실패를 나타내는 sentinel error다.
	ErrStorage = errors.New("셸 설정 파일 접근 실패")
	// ErrUnsupportedShell은 영속 설정 파일이 없는 셸에서 반환된다.
	ErrUnsupportedShell = errors.New("설정 파일 영속화를 지원하지 않는 셸")
	// ErrInvalidName은 환경변수 이름 형식이 잘못되었을 때 반환된다.
	ErrInvalidName = errors.New("잘못된 환경변수 이름")
	// ErrInvalidValue는 한 줄로 기록할 수 없는 값일 때 반환된다.
	ErrInvalidValue = errors.New("잘못된 환경변수 값")
)

// StorageError는 파일 시스템 오류에 작업과 경로를 붙인다.
// errors.Is(err, ErrStorage)와 원인 오류 모두에 매칭된다.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("rcfile.%s: %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}
