package v1

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dancecash/dancecash-api/internal/api/handler/v1/response"
	"github.com/dancecash/dancecash-api/internal/config"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type SiteHandler struct {
	conf *config.APIConfig
	svc  EventService
}

func NewSiteHandler(conf *config.APIConfig, svc EventService) *SiteHandler {
	return &SiteHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleSitemap godoc
// @Summary      Sitemap listing public event and artist pages
// @Tags         site
// @Produce      xml
// @Success      200  {string}  string
// @Failure      500  {object}  response.Err
// @Router       /sitemap.xml [get]
func (h *SiteHandler) HandleSitemap(ctx *gin.Context) {
	events, err := h.svc.GetEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleSitemap -> h.svc.GetEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	artists, err := h.svc.GetArtists(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleSitemap -> h.svc.GetArtists -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	base := h.conf.BaseURL
	urlSet := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: base + "/", ChangeFreq: "daily"},
			{Loc: base + "/events", ChangeFreq: "daily"},
			{Loc: base + "/artists", ChangeFreq: "weekly"},
		},
	}

	for _, event := range events {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%v/events/%v", base, event.ID),
			LastMod: event.UpdatedAt.Format(time.DateOnly),
		})
	}
	for _, artist := range artists {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%v/artists/%v", base, artist.ID),
			LastMod: artist.UpdatedAt.Format(time.DateOnly),
		})
	}

	ctx.XML(http.StatusOK, urlSet)
}

// HandleRobots godoc
// @Summary      robots.txt
// @Tags         site
// @Produce      plain
// @Success      200  {string}  string
// @Router       /robots.txt [get]
func (h *SiteHandler) HandleRobots(ctx *gin.Context) {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %v/sitemap.xml\n", h.conf.BaseURL)

	ctx.String(http.StatusOK, body)
}
