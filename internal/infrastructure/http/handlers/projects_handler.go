package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/project"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/http/middleware"
)

type ProjectsHandler struct {
	create *project.CreateProject
	list   *project.ListProjects
	update *project.UpdateProject
	remove *project.DeleteProject
	log    zerolog.Logger
}

func NewProjectsHandler(create *project.CreateProject, list *project.ListProjects, update *project.UpdateProject, del *project.DeleteProject, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{create: create, list: list, update: update, remove: del, log: log}
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name" validate:"required,max=255"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	p, err := h.create.Execute(r.Context(), project.CreateProjectInput{
		Name:        body.Name,
		Description: body.Description,
		Actor:       middleware.UserFromContext(r.Context()),
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, projectView(p))
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.list.Execute(r.Context())
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	items := make([]ProjectSummaryView, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, projectSummaryView(s))
	}
	respondJSON(w, h.log, http.StatusOK, items)
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
		Description *string `json:"description"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	p, err := h.update.Execute(r.Context(), project.UpdateProjectInput{
		ID:    domain.ProjectID(id),
		Patch: domain.ProjectPatch{Name: body.Name, Description: body.Description},
		Actor: middleware.UserFromContext(r.Context()),
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, projectView(p))
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	removed, err := h.remove.Execute(r.Context(), domain.ProjectID(id))
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, map[string]any{
		"message":       "Deleted successfully",
		"sites_removed": removed,
	})
}
