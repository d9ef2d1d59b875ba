package deps

import (
	"time"

	"github.com/jwhur/startpage/internal/logger"
	"github.com/jwhur/startpage/internal/store"
	"github.com/jwhur/startpage/internal/store/redisclicks"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Links     *store.LinkStore
	RCFile    *store.RCFile
	Memos     *store.MemoStore
	ReadLater *store.ReadLaterStore
	Clicks    *redisclicks.Store // nil when redis is disabled

	KeepSpecialFolders bool  // forwarded to the bookmark import parsers
	MaxImportBytes     int64 // upload size cap for POST /api/import

	ReloadTrigger chan struct{} // manual RC file reload
}
