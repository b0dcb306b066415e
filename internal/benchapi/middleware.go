package benchapi

import (
	"bytes"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// ZstdRequestMiddleware transparently decompresses zstd-encoded request
// bodies. Prediction payloads are large float arrays that compress well,
// so clients are encouraged to send them encoded.
func ZstdRequestMiddleware(whitelistedRoutes []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, route := range whitelistedRoutes {
			if path == route {
				return c.Next()
			}
		}

		if strings.ToLower(c.Get("content-encoding")) != "zstd" {
			return c.Next()
		}

		body := c.Body()
		if len(body) == 0 {
			return c.Next()
		}

		decoder, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			log.Err(err).Msg("Failed to create zstd decoder")
			return fiber.NewError(fiber.StatusBadRequest, "failed to decompress zstd body")
		}
		defer decoder.Close()

		decompressed, err := io.ReadAll(decoder)
		if err != nil {
			log.Err(err).Msg("Failed to decompress request")
			return fiber.NewError(fiber.StatusBadRequest, "failed to decompress zstd body")
		}

		c.Request().SetBody(decompressed)
		c.Request().Header.Del("content-encoding")
		log.Debug().Int("compressed", len(body)).Int("raw", len(decompressed)).Msg("Request body decompressed")
		return c.Next()
	}
}
