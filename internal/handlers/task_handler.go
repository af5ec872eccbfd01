package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.taskService.List(c.UserContext(), c.Query("framework"))
	if err != nil {
		return err
	}
	return c.JSON(tasks)
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	task, err := h.taskService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(task)
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil || payload == nil {
		return badBody(c)
	}

	id, err := h.taskService.Create(c.UserContext(), payload, subject.UID)
	if err != nil {
		return writeError(c, err)
	}

	slog.Info("task created", "task_id", id, "uid", subject.UID)
	return c.Status(fiber.StatusCreated).JSON(dto.CreateTaskResponse{
		ID:      id,
		Message: "Task created successfully",
	})
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil || patch == nil {
		return badBody(c)
	}

	id := c.Params("id")
	if err := h.taskService.Update(c.UserContext(), id, patch); err != nil {
		return writeError(c, err)
	}

	slog.Info("task updated", "task_id", id, "fields", len(patch))
	return c.JSON(dto.MessageResponse{Message: "Task updated successfully"})
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.taskService.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}

	slog.Info("task deactivated", "task_id", id)
	return c.JSON(dto.MessageResponse{Message: "Task deactivated successfully"})
}
