package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/authgate-io/authgate/internal/logger"
	"github.com/authgate-io/authgate/internal/reqctx"
)

// CheckAliveURI is exempt from access logging when Log.DisableCheckAlive is set.
const CheckAliveURI = "/checkalive"

// Logging returns the second middleware stage. It emits one info record on
// entry and one on exit, the latter carrying the final status and elapsed
// time. The exit record is emitted even when downstream returned an error:
// the app error handler runs here so the logged status is the one the client
// sees.
func Logging(cfg logger.Log) fiber.Handler {
	var (
		once       sync.Once
		errHandler fiber.ErrorHandler
	)

	return func(c *fiber.Ctx) error {
		if cfg.DisableCheckAlive && c.Path() == CheckAliveURI {
			return c.Next()
		}

		// set error handler once
		once.Do(func() {
			errHandler = c.App().ErrorHandler
		})

		lg := reqctx.MustFromCtx(c).Logger()
		lg.Info().Msg("request started")

		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			if errH := errHandler(c, chainErr); errH != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck // ok here
			}
		}

		elapsed := time.Since(start).Seconds()

		exit := lg.Info().
			Int("status", c.Response().StatusCode()).
			Float64("elapsed", elapsed)

		if chainErr != nil {
			exit = exit.Err(chainErr)
		}

		exit.Msg("request completed")

		// end chain; the error was already rendered above
		return nil
	}
}
