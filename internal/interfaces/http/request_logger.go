package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturas-api/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, status y latencia.
// El request id viene del middleware requestid de Fiber (header X-Request-ID).
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// El error handler de Fiber decide el status después; aquí solo se registra.
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		evt := log.Info()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error()
		}
		evt.
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")

		return err
	}
}
