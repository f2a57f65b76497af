package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripflow/internal/agents"
	"tripflow/internal/models/request_models"
	"tripflow/internal/models/trip_models"
	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

type PlannerController struct {
	factory   *agents.AgentFactory
	generator services.GeneratorServiceInterface
	detector  services.DetectorServiceInterface
	scraper   services.ScraperServiceInterface
	pdf       services.PDFServiceInterface
	media     services.MediaServiceInterface
}

func NewPlannerController(
	factory *agents.AgentFactory,
	generator services.GeneratorServiceInterface,
	detector services.DetectorServiceInterface,
	scraper services.ScraperServiceInterface,
	pdf services.PDFServiceInterface,
	media services.MediaServiceInterface,
) *PlannerController {
	return &PlannerController{
		factory:   factory,
		generator: generator,
		detector:  detector,
		scraper:   scraper,
		pdf:       pdf,
		media:     media,
	}
}

// progressEvent is the wire shape of one generation snapshot.
type progressEvent struct {
	Progress  trip_models.GenerationProgress `json:"progress"`
	Itinerary *trip_models.Itinerary         `json:"itinerary"`
	Metadata  *trip_models.ItineraryMetadata `json:"metadata,omitempty"`
}

// GenerateItinerary godoc
// @Summary Generate an itinerary block by block
// @Description Start a fresh generation run and stream progress snapshots as server-sent events
// @Tags Planner
// @Accept json
// @Produce text/event-stream
// @Param request body request_models.GenerateItineraryRequest true "Generation request"
// @Success 200 {string} string "SSE stream of progress events"
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries/generate [post]
func (p *PlannerController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	agent, err := p.factory.Create(req.Provider)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	agent.SetDestinations(req.Destinations)
	agent.SetLanguage(req.Language)

	updates := p.generator.Generate(c.Request.Context(), agent, services.GenerateRequest{
		Requirements: req.Requirements,
		Language:     req.Language,
		BlockSize:    req.BlockSize,
	})
	p.streamUpdates(c, updates)
}

// ResumeItinerary godoc
// @Summary Resume a partial generation run
// @Description Continue generating days from a saved partial state; metadata is never regenerated
// @Tags Planner
// @Accept json
// @Produce text/event-stream
// @Param request body request_models.ResumeItineraryRequest true "Resume request"
// @Success 200 {string} string "SSE stream of progress events"
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries/resume [post]
func (p *PlannerController) ResumeItinerary(c *gin.Context) {
	var req request_models.ResumeItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	agent, err := p.factory.Create(req.Provider)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	agent.SetDestinations(req.Destinations)
	agent.SetLanguage(req.Language)

	updates := p.generator.Resume(c.Request.Context(), agent, services.ResumeRequest{
		Requirements: req.Requirements,
		Language:     req.Language,
		BlockSize:    req.BlockSize,
		Metadata:     req.Metadata,
		Existing:     req.Existing,
	})
	p.streamUpdates(c, updates)
}

func (p *PlannerController) streamUpdates(c *gin.Context, updates <-chan services.GenerationUpdate) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher := c.Writer.(http.Flusher)
	for {
		select {
		case update, ok := <-updates:
			if !ok {
				c.SSEvent("done", "")
				flusher.Flush()
				return
			}
			c.SSEvent("progress", progressEvent{
				Progress:  update.Progress,
				Itinerary: update.Itinerary,
				Metadata:  update.Metadata,
			})
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

// UpdateItinerary godoc
// @Summary Generate or revise a full itinerary in one call
// @Description Single-shot generation; pass current to revise an existing itinerary
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.UpdateItineraryRequest true "Update request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /itineraries/update [post]
func (p *PlannerController) UpdateItinerary(c *gin.Context) {
	var req request_models.UpdateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	agent, err := p.factory.Create(req.Provider)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	agent.SetDestinations(req.Destinations)
	agent.SetLanguage(req.Language)

	itinerary, err := agent.GenerateItinerary(c.Request.Context(), req.Requirements, req.Current, req.Language)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, itinerary, "Itinerary generated successfully")
}

// DetectDestinations godoc
// @Summary Detect trip destinations from a conversation
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.DetectDestinationsRequest true "Detection request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /destinations/detect [post]
func (p *PlannerController) DetectDestinations(c *gin.Context) {
	var req request_models.DetectDestinationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	agent, err := p.factory.Create(req.Provider)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	destinations := p.detector.ExtractFromConversation(c.Request.Context(), req.History, agent)
	utils.RespondSuccess(c, destinations, "Destinations detected")
}

// ScrapeBlog godoc
// @Summary Scrape a travel blog for trip context
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.ScrapeBlogRequest true "Scrape request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /blogs/scrape [post]
func (p *PlannerController) ScrapeBlog(c *gin.Context) {
	var req request_models.ScrapeBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	content, err := p.scraper.ScrapeBlog(c.Request.Context(), req.URL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, content, "Blog scraped successfully")
}

// DestinationImages godoc
// @Summary Fetch cached stock images for a destination
// @Description Resolve local image paths for a destination or explicit search queries; best effort, failures are skipped
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.DestinationImagesRequest true "Images request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /destinations/images [post]
func (p *PlannerController) DestinationImages(c *gin.Context) {
	var req request_models.DestinationImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	queries := req.Queries
	if len(queries) == 0 && req.Destination != nil {
		queries = req.Destination.ImageQueries()
	}
	if len(queries) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "Either destination or queries is required")
		return
	}
	max := req.Max
	if max <= 0 {
		max = 4
	}

	paths := p.media.FetchImages(c.Request.Context(), queries, max)
	utils.RespondSuccess(c, paths, "Images fetched")
}

// RenderPDF godoc
// @Summary Render an itinerary as a PDF document
// @Tags Planner
// @Accept json
// @Produce application/pdf
// @Param request body request_models.RenderPDFRequest true "Render request"
// @Success 200 {file} binary
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries/pdf [post]
func (p *PlannerController) RenderPDF(c *gin.Context) {
	var req request_models.RenderPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	data, err := p.pdf.RenderItinerary(req.Itinerary, services.PDFStyle(req.Style))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="itinerary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
