package handler

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Callback pages are rendered inline. The browser window is throwaway;
// the user is told to return to the chat either way.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: -apple-system, Arial, sans-serif; text-align: center; padding: 50px 20px; background: #fafafa; }
        .card { max-width: 420px; margin: 0 auto; background: #fff; border-radius: 12px; padding: 40px 30px; box-shadow: 0 1px 4px rgba(0,0,0,0.1); }
        .icon { font-size: 56px; }
        h1 { font-size: 22px; color: #262626; }
        p { color: #8e8e8e; line-height: 1.5; }
        .username { color: #0095f6; font-weight: 600; }
    </style>
</head>
<body>
    <div class="card">
        <div class="icon">{{.Icon}}</div>
        <h1>{{.Heading}}</h1>
        {{if .Username}}<p class="username">@{{.Username}}</p>{{end}}
        <p>{{.Message}}</p>
    </div>
</body>
</html>
`))

type pageData struct {
	Title    string
	Icon     string
	Heading  string
	Username string
	Message  string
}

func renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("page render failed")
	}
}

func renderSuccessPage(w http.ResponseWriter, username string) {
	renderPage(w, http.StatusOK, pageData{
		Title:    "Instagram Connected",
		Icon:     "✅",
		Heading:  "Instagram Connected Successfully!",
		Username: username,
		Message:  "You can close this window and return to Telegram.",
	})
}

func renderErrorPage(w http.ResponseWriter, status int, heading, message string) {
	renderPage(w, status, pageData{
		Title:   "Connection Failed",
		Icon:    "❌",
		Heading: heading,
		Message: message,
	})
}
