package handlers

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/models"
)

var resultPage = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding: 40px;">
  <h1>{{.Title}}</h1>
  <p>{{.Body}}</p>
</body>
</html>
`))

var usersTablePage = template.Must(template.New("users_table").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Users</title>
  <style>
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
    th { background-color: #4CAF50; color: white; }
  </style>
</head>
<body>
  <h1>Users</h1>
  <table>
    <tr>
      <th>ID</th><th>Username</th><th>First Name</th><th>Last Name</th>
      <th>Email</th><th>Phone</th><th>Is Manager</th><th>Created At</th>
    </tr>
    {{- range .}}
    <tr>
      <td>{{.ID}}</td>
      <td>{{.Username}}</td>
      <td>{{with .FirstName}}{{.}}{{end}}</td>
      <td>{{with .LastName}}{{.}}{{end}}</td>
      <td>{{.Email}}</td>
      <td>{{with .Phone}}{{.}}{{end}}</td>
      <td>{{if .IsManager}}Yes{{else}}No{{end}}</td>
      <td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td>
    </tr>
    {{- end}}
  </table>
</body>
</html>
`))

// renderPage writes a standalone HTML page with the given status.
func renderPage(w http.ResponseWriter, status int, tmpl *template.Template, data interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Str("template", tmpl.Name()).Msg("Failed to render page")
	}
}

func renderResultPage(w http.ResponseWriter, status int, title, body string) {
	renderPage(w, status, resultPage, struct{ Title, Body string }{title, body})
}

func renderUsersTable(w http.ResponseWriter, users []*models.User) {
	renderPage(w, http.StatusOK, usersTablePage, users)
}
