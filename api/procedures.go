package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/developer-portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

type procedureKind string

const (
	query    procedureKind = "query"
	mutation procedureKind = "mutation"
)

type procedure struct {
	kind procedureKind
	op   operation
}

// procedures maps every remote procedure name to its operation. Queries are
// called with GET and an optional ?input= JSON document, mutations with POST
// and a JSON body.
func (h *routeHandlers) procedures() map[string]procedure {
	return map[string]procedure{
		"healthcheck": {query, h.healthHandler.healthcheckQuery()},

		"getProfile":    {query, h.profileHandler.getProfile()},
		"updateProfile": {mutation, h.profileHandler.updateProfile()},

		"getSkills":   {query, h.skillHandler.getSkills()},
		"createSkill": {mutation, h.skillHandler.createSkill()},
		"updateSkill": {mutation, h.skillHandler.updateSkill()},
		"deleteSkill": {mutation, h.skillHandler.deleteSkill()},

		"getProjects":         {query, h.projectHandler.getProjects()},
		"getFeaturedProjects": {query, h.projectHandler.getFeaturedProjects()},
		"createProject":       {mutation, h.projectHandler.createProject()},
		"updateProject":       {mutation, h.projectHandler.updateProject()},
		"deleteProject":       {mutation, h.projectHandler.deleteProject()},

		"createContactMessage": {mutation, h.contactHandler.createContactMessage()},
		"getContactMessages":   {query, h.contactHandler.getContactMessages()},
		"markMessageRead":      {mutation, h.contactHandler.markMessageRead()},
		"getContactInfo":       {query, h.contactHandler.getContactInfo()},
		"updateContactInfo":    {mutation, h.contactHandler.updateContactInfo()},
	}
}

// rpcHandler dispatches /rpc/{procedure} calls.
func rpcHandler(procedures map[string]procedure) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "rpcHandler").Logger())

	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "procedure")
		proc, ok := procedures[name]
		if !ok {
			responder.WriteError(w, errs.NewUnknownProcedureError(name))
			return
		}

		var payload []byte
		switch {
		case proc.kind == query && r.Method == http.MethodGet:
			payload = []byte(r.URL.Query().Get("input"))
		case proc.kind == mutation && r.Method == http.MethodPost:
			body, err := readPayload(w, r)
			if err != nil {
				responder.WriteError(w, err)
				return
			}
			payload = body
		default:
			w.Header().Set("Allow", allowedMethod(proc.kind))
			responder.WriteError(w, errs.NewApiErr(http.StatusMethodNotAllowed,
				fmt.Sprintf("%s is a %s; use %s", name, proc.kind, allowedMethod(proc.kind))))
			return
		}

		result, err := proc.op(r.Context(), payload, nil)
		if err != nil {
			responder.WriteError(w, err)
			return
		}
		responder.WriteJSON(w, result)
	}
}

func allowedMethod(kind procedureKind) string {
	if kind == query {
		return http.MethodGet
	}
	return http.MethodPost
}
