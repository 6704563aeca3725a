package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/site"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
)

type SitesHandler struct {
	create *site.CreateSite
	list   *site.ListSites
	update *site.UpdateSite
	remove *site.DeleteSite
	log    zerolog.Logger
}

func NewSitesHandler(create *site.CreateSite, list *site.ListSites, update *site.UpdateSite, del *site.DeleteSite, log zerolog.Logger) *SitesHandler {
	return &SitesHandler{create: create, list: list, update: update, remove: del, log: log}
}

func siteMutationView(res *site.Result) SiteMutationView {
	return SiteMutationView{
		ID:        int64(res.Site.ID),
		Name:      res.Site.Name,
		ProjectID: int64(res.Site.ProjectID),
		AreaKm2:   res.AreaKm2,
	}
}

func (h *SitesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProjectID  int64  `json:"project_id" validate:"required,gt=0"`
		Name       string `json:"name" validate:"required,max=255"`
		PolygonWKT string `json:"polygon_wkt"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	res, err := h.create.Execute(r.Context(), site.CreateSiteInput{
		ProjectID:  domain.ProjectID(body.ProjectID),
		Name:       body.Name,
		PolygonWKT: body.PolygonWKT,
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, siteMutationView(res))
}

func (h *SitesHandler) List(w http.ResponseWriter, r *http.Request) {
	sites, err := h.list.Execute(r.Context())
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	items := make([]SiteView, 0, len(sites))
	for _, s := range sites {
		items = append(items, siteView(s))
	}
	respondJSON(w, h.log, http.StatusOK, items)
}

func (h *SitesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Name       *string `json:"name" validate:"omitempty,min=1,max=255"`
		PolygonWKT *string `json:"polygon_wkt"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	res, err := h.update.Execute(r.Context(), site.UpdateSiteInput{
		ID:    domain.SiteID(id),
		Patch: domain.SitePatch{Name: body.Name, PolygonWKT: body.PolygonWKT},
	})
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, siteMutationView(res))
}

func (h *SitesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.remove.Execute(r.Context(), domain.SiteID(id)); err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, map[string]string{"message": "Site deleted successfully"})
}
