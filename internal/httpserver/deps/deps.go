package deps

import (
	"time"

	"github.com/MrSnakeDoc/trainstatus/internal/logger"
	"github.com/MrSnakeDoc/trainstatus/internal/training"
)

type Deps struct {
	Logger      logger.Logger
	StartTime   time.Time
	Version     string
	Commit      string
	BuildDate   string
	GoVersion   string
	TimeNow     func() time.Time   // for testing, defaults to time.Now
	Reporter    *training.Reporter // builds every training document served
	CORSOrigins []string           // allowed Origin values, "*" for any
}
