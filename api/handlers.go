package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/arenito/pkg/catalog"
	"github.com/papercomputeco/arenito/pkg/completion"
	"github.com/papercomputeco/arenito/pkg/orchestrator"
)

// handleHealth always reports ok.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(HealthStatus{
		Status:    "ok",
		Message:   "API funcionando correctamente",
		Timestamp: s.now(),
	})
}

// handleCatalog returns the full product list.
func (s *Server) handleCatalog(c *fiber.Ctx) error {
	return c.JSON(s.catalog.List())
}

// handleProduct returns a single product by weight.
func (s *Server) handleProduct(c *fiber.Ctx) error {
	weight, err := strconv.Atoi(c.Params("weightKg"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Detail: "weight_kg debe ser un número entero",
		})
	}

	product, ok := s.catalog.Find(weight)
	if !ok {
		s.logger.Debug("product lookup miss", "weight_kg", weight, "error", catalog.ErrNotFound)
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Detail: "Producto no encontrado",
		})
	}

	return c.JSON(product)
}

// handleChat processes one chat turn.
func (s *Server) handleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Detail: fmt.Sprintf("cuerpo de la petición inválido: %v", err),
		})
	}

	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Detail: validationDetail(err),
		})
	}

	answer, err := s.orchestrator.ProcessTurn(c.UserContext(), req.Message, req.History)
	if err != nil {
		status, body := chatErrorResponse(s.orchestrator.Provider(), err)
		s.logger.Error("chat turn failed",
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"kind", errorKind(err),
			"error", err,
		)
		return c.Status(status).JSON(body)
	}

	return c.JSON(ChatResponse{
		Answer:    answer.Text,
		Timestamp: answer.Timestamp,
	})
}

// chatErrorResponse maps the turn error taxonomy onto HTTP.
func chatErrorResponse(provider string, err error) (int, ErrorResponse) {
	name := displayName(provider)

	var cerr *orchestrator.ConfigurationError
	if errors.As(err, &cerr) {
		if cerr.Err != nil {
			return fiber.StatusInternalServerError, ErrorResponse{
				Detail: fmt.Sprintf("Error al configurar %s: %v", name, cerr.Err),
			}
		}
		envVar := cerr.EnvVar
		if envVar == "" {
			envVar = "la credencial de " + name
		}
		return fiber.StatusInternalServerError, ErrorResponse{
			Detail: fmt.Sprintf("Falta configurar %s en las variables de entorno", envVar),
		}
	}

	if errors.Is(err, completion.ErrEmptyCompletion) {
		return fiber.StatusInternalServerError, ErrorResponse{
			Detail: fmt.Sprintf("%s no generó respuesta", name),
		}
	}

	var perr *completion.ProviderError
	if errors.As(err, &perr) {
		return fiber.StatusInternalServerError, ErrorResponse{
			Detail: fmt.Sprintf("Error al procesar con %s: %s", displayName(perr.Provider), perr.Message),
		}
	}

	return fiber.StatusInternalServerError, ErrorResponse{
		Detail: fmt.Sprintf("Error al procesar con %s: %v", name, err),
	}
}

func errorKind(err error) string {
	var cerr *orchestrator.ConfigurationError
	var perr *completion.ProviderError
	switch {
	case errors.As(err, &cerr):
		return "configuration"
	case errors.Is(err, completion.ErrEmptyCompletion):
		return "empty_completion"
	case errors.As(err, &perr):
		return "provider"
	default:
		return "unknown"
	}
}

// displayName capitalizes a provider name for user-facing messages.
func displayName(provider string) string {
	if provider == "" {
		return "el proveedor"
	}
	return strings.ToUpper(provider[:1]) + provider[1:]
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s debe tener al menos %s carácter", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s no es válido (%s)", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
