package cli

import (
	"log/slog"

	"github.com/hbjs97/pmctl/internal/auth"
	"github.com/hbjs97/pmctl/internal/cache"
	"github.com/hbjs97/pmctl/internal/config"
	"github.com/hbjs97/pmctl/internal/credential"
	"github.com/hbjs97/pmctl/internal/postman"
	"github.com/hbjs97/pmctl/internal/rcfile"
	"github.com/hbjs97/pmctl/internal/shell"
)

// session은 한 명령 실행 동안 쓰는 저장소와 클라이언트 묶음이다.
type session struct {
	cfg    *config.Config
	kind   shell.Kind
	store  *rcfile.Store
	creds  *credential.Store
	client *postman.Client
	auth   *auth.Coordinator
	logger *slog.Logger
}

// open은 설정을 읽고 셸 감지부터 Auth Coordinator까지 조립한다.
func (a *App) open() (*session, error) {
	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		return nil, err
	}
	logger := a.logger()

	det := a.Detector
	if det == nil {
		det = shell.NewDetector()
	}
	kind := det.Detect()
	if override, ok := cfg.ShellOverride(); ok {
		kind = override
	}
	logger.Debug("셸 감지", "shell", kind)

	opts := append([]rcfile.Option{rcfile.WithLogger(logger)}, a.RCOptions...)
	store := rcfile.New(kind, det.ConfigPaths(kind), opts...)
	creds := credential.NewStore(store)
	client := postman.NewClient(cfg.APIBaseURL, cfg.Timeout(), postman.WithLogger(logger))

	return &session{
		cfg:    cfg,
		kind:   kind,
		store:  store,
		creds:  creds,
		client: client,
		auth:   auth.NewCoordinator(creds, store, client, logger),
		logger: logger,
	}, nil
}

func (s *session) baseURL() string {
	if s.cfg.APIBaseURL == "" {
		return postman.DefaultBaseURL
	}
	return s.cfg.APIBaseURL
}

func (a *App) cachePath() string {
	if a.CachePath != "" {
		return a.CachePath
	}
	p, err := cache.DefaultPath()
	if err != nil {
		return ""
	}
	return p
}
