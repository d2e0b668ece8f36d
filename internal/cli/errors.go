package cli

import (
	"github.com/hbjs97/pmctl/internal/auth"
	"github.com/hbjs97/pmctl/internal/config"
	"github.com/hbjs97/pmctl/internal/credential"
	"github.com/hbjs97/pmctl/internal/postman"
	"github.com/hbjs97/pmctl/internal/rcfile"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	ErrInvalidAPIKey      = credential.ErrInvalidAPIKey
	ErrInvalidWorkspaceID = credential.ErrInvalidWorkspaceID
	ErrStorage            = rcfile.ErrStorage
	ErrUnsupportedShell   = rcfile.ErrUnsupportedShell
	ErrInvalidValue       = rcfile.ErrInvalidValue
	ErrRemoteValidation   = auth.ErrRemoteValidation
	ErrNotAuthenticated   = auth.ErrNotAuthenticated
	ErrUnauthorized       = postman.ErrUnauthorized
	ErrConfig             = config.ErrConfig
)
