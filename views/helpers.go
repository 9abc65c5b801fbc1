package views

import (
	"context"
	"strconv"

	"github.com/AdamBeresnev/afcon-predictor/internal/middleware"
	users "github.com/AdamBeresnev/afcon-predictor/internal/user"
)

func GetUser(ctx context.Context) *users.User {
	return middleware.GetAuthenticatedUser(ctx)
}

func scoreInput(name string, value string, disabled, required bool) string {
	attrs := ""
	if disabled {
		attrs += " disabled"
	}
	if required {
		attrs += " required"
	}
	return `<input type="number" min="0" class="score" name="` + name + `" value="` + esc(value) + `"` + attrs + `>`
}

func intValue(v int) string {
	return strconv.Itoa(v)
}
