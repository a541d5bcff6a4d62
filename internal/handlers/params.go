package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

func queryInt(ctx *gin.Context, name string, fallback int) (int, error) {
	raw := ctx.Query(name)

	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)

	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}

	return value, nil
}
