package web

import "github.com/gin-gonic/gin"

const flashCookieName = "flash"

// setFlash stores a one-shot status message shown on the next page render.
func setFlash(ctx *gin.Context, message string) {
	ctx.SetCookie(flashCookieName, message, 60, "/", "", false, true)
}

func takeFlash(ctx *gin.Context) string {
	message, err := ctx.Cookie(flashCookieName)

	if err != nil || message == "" {
		return ""
	}

	ctx.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	return message
}
