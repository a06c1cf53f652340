package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// projectHandler handles HTTP requests related to projects and their employee assignments.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps}
}

func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)

	projects := rg.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.POST("", h.createProject)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)
		projects.POST("/:id/assign", h.assignEmployee)
		projects.DELETE("/:id/assign/:userId", h.removeEmployee)
	}
}

// listProjects godoc
// @Summary List projects
// @Description Lists the projects the caller is involved with (all of them for administrators), newest first.
// @Tags projects
// @Produce json
// @Param status query string false "Filter by status" Enums(PLANNING, IN_PROGRESS, COMPLETED, ON_HOLD, CANCELLED)
// @Param managerId query string false "Filter by manager"
// @Param search query string false "Matches name or description"
// @Success 200 {object} dto.SuccessResponse{data=object{projects=[]dto.ProjectResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var params dto.ListProjectsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), principal, params.ToProjectFilter())
	if err != nil {
		respondError(c, err, "Failed to retrieve projects")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Projects retrieved successfully", gin.H{"projects": dto.ToProjectResponses(projects)}))
}

// getProject godoc
// @Summary Get a project by ID
// @Description Returns the project with its employees and KPIs.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.SuccessResponse{data=object{project=dto.ProjectResponse}}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProjectByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve project")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Project retrieved successfully", gin.H{"project": dto.ToProjectResponse(project)}))
}

// createProject godoc
// @Summary Create a project
// @Description Administrators and managers only.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.SuccessResponse{data=object{project=dto.ProjectResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("Project created successfully", gin.H{"project": dto.ToProjectResponse(project)}))
}

// updateProject godoc
// @Summary Update a project
// @Description Administrators, the project's manager or its creator.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=object{project=dto.ProjectResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Project updated successfully", gin.H{"project": dto.ToProjectResponse(project)}))
}

// deleteProject godoc
// @Summary Delete a project
// @Description Administrators only. Assignments and KPIs of the project are removed with it.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Project deleted successfully", nil))
}

// assignEmployee godoc
// @Summary Assign an employee to a project
// @Description Administrators or the project's manager.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param assignment body dto.AssignEmployeeRequest true "Assignment"
// @Success 201 {object} dto.SuccessResponse{data=object{assignment=dto.MembershipResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already assigned"
// @Security BearerAuth
// @Router /projects/{id}/assign [post]
func (h *projectHandler) assignEmployee(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	var req dto.AssignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	membership, err := h.projectService.AssignEmployee(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to assign employee to project")
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("Employee assigned to project successfully",
		gin.H{"assignment": dto.ToMembershipResponse(membership)}))
}

// removeEmployee godoc
// @Summary Remove an employee from a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Param userId path string true "User ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/assign/{userId} [delete]
func (h *projectHandler) removeEmployee(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	if err := h.projectService.RemoveEmployee(c.Request.Context(), principal, c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, err, "Failed to remove employee from project")
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Employee removed from project successfully", nil))
}
