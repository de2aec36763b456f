package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"codebliss/internal/apperror"
	"codebliss/internal/models"
	"codebliss/pkg/preview"

	"github.com/gin-gonic/gin"
)

const (
	msgProjectUpdated = "The project has been updated successfully."
	maxQRSize         = 1024
)

func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	userID := currentUserID(c)
	project, err := h.projects.Create(c.Request.Context(), userID, *req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.auditLog(c, userID, models.ActionCreateProject, project.ID, map[string]string{"name": project.Name})

	respond(c, http.StatusCreated,
		fmt.Sprintf("A new project named '%s' has been successfully created with a basic template.", project.Name),
		gin.H{"project": project})
}

func (h *Handler) ListMyProjects(c *gin.Context) {
	projects, err := h.projects.ListByOwner(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Projects fetched successfully.", gin.H{
		"totalProjects": len(projects),
		"projects":      projects,
	})
}

// loadProject validates :projectId and fetches the project for any
// authenticated caller.
func (h *Handler) loadProject(c *gin.Context) (*models.Project, bool) {
	id, err := pathProjectID(c.Param("projectId"))
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	project, err := h.projects.Fetch(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return project, true
}

func (h *Handler) FetchProject(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, "Project fetched successfully.", gin.H{"project": project})
}

func (h *Handler) UpdateProjectName(c *gin.Context) {
	var req updateNameRequest
	if err := bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	userID := currentUserID(c)
	project, err := h.projects.UpdateName(c.Request.Context(), userID, *req.ProjectID, *req.NewName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.auditLog(c, userID, models.ActionUpdateProjectName, project.ID, map[string]string{"name": project.Name})
	respond(c, http.StatusOK, msgProjectUpdated, gin.H{"project": project})
}

func (h *Handler) UpdateProjectCode(c *gin.Context) {
	var req updateCodeRequest
	if err := bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	userID := currentUserID(c)
	project, err := h.projects.UpdateCode(c.Request.Context(), userID, *req.ProjectID, req.Code.Code())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.auditLog(c, userID, models.ActionUpdateProjectCode, project.ID, nil)
	respond(c, http.StatusOK, msgProjectUpdated, gin.H{"project": project})
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id, err := pathProjectID(c.Param("projectId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID := currentUserID(c)
	if err := h.projects.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err)
		return
	}

	h.auditLog(c, userID, models.ActionDeleteProject, id, nil)
	respond(c, http.StatusOK, "The project has been deleted successfully.", nil)
}

func (h *Handler) ForkProject(c *gin.Context) {
	var req projectIDRequest
	if err := bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	userID := currentUserID(c)
	project, err := h.projects.Fork(c.Request.Context(), userID, *req.ProjectID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.auditLog(c, userID, models.ActionForkProject, project.ID, map[string]string{"source": *req.ProjectID})
	respond(c, http.StatusCreated, "The project has been forked successfully.", gin.H{"project": project})
}

// PreviewProject serves the rendered document. The sandbox policy gives it
// an opaque origin so scripts cannot reach the API with the caller's cookie.
func (h *Handler) PreviewProject(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	c.Header("Content-Security-Policy", "sandbox allow-scripts")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(preview.Document(preview.Code(project.Code))))
}

func (h *Handler) DownloadProject(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := preview.Archive(&buf, project.Name, preview.Code(project.Code)); err != nil {
		if errors.Is(err, preview.ErrEmptyArchive) {
			err = apperror.BadRequest(models.EmptyCodeMessage)
		}
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, preview.Filename(project.Name)))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

func (h *Handler) ProjectQRCode(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	fg, bg := c.Query("fg"), c.Query("bg")
	switch format := c.DefaultQuery("format", "png"); format {
	case "png":
		size, _ := strconv.Atoi(c.Query("size"))
		if size > maxQRSize {
			size = maxQRSize
		}
		png, err := h.qr.ProjectPNG(project.ID, size, fg, bg)
		if err != nil {
			h.respondError(c, apperror.Internal(err))
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	case "svg":
		svg, err := h.qr.ProjectSVG(project.ID, fg, bg)
		if err != nil {
			h.respondError(c, apperror.Internal(err))
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
	default:
		h.respondError(c, apperror.Validation(apperror.FieldError{
			Field: "format",
			Error: "Format must be either png or svg.",
		}))
	}
}
