package courseValidator

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"learnhub/middleware"
)

var validate = validator.New()

// CreateCourseRequest is the validated course creation body
type CreateCourseRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=200"`
	Description  string `json:"description" validate:"required,min=5"`
	Category     string `json:"category" validate:"omitempty,max=50"`
	Level        string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`
}

// UpdateCourseRequest allows partial updates; empty fields are skipped
type UpdateCourseRequest struct {
	Title        string `json:"title" validate:"omitempty,min=3,max=200"`
	Description  string `json:"description" validate:"omitempty,min=5"`
	Category     string `json:"category" validate:"omitempty,max=50"`
	Level        string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`
}

// CreateLessonRequest is the validated lesson body
type CreateLessonRequest struct {
	Title      string `json:"title" validate:"required,min=3,max=200"`
	Content    string `json:"content" validate:"required"`
	VideoURL   string `json:"video_url" validate:"omitempty,url"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

// UpdateLessonRequest allows partial lesson updates
type UpdateLessonRequest struct {
	Title      string `json:"title" validate:"omitempty,min=3,max=200"`
	Content    string `json:"content"`
	VideoURL   string `json:"video_url" validate:"omitempty,url"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

// CreateAssignmentRequest is the validated assignment body
type CreateAssignmentRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required"`
	MaxScore    int    `json:"max_score" validate:"omitempty,gte=1,lte=1000"`
}

// SubmitRequest carries the student's answer
type SubmitRequest struct {
	Code string `json:"code" validate:"required"`
}

// GradeRequest carries the tutor's grade and feedback
type GradeRequest struct {
	Grade    *int   `json:"grade" validate:"required,gte=0"`
	Feedback string `json:"feedback" validate:"omitempty,max=5000"`
}

// ReviewRequest carries a course rating and comment
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// TagRequest names a tag to attach or detach
type TagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
}

// IDParam validates that the named route parameter is a positive integer and
// stores it in the locals under localKey
func IDParam(param, localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" parameter!", nil)
		}
		c.Locals(localKey, uint(id))
		return c.Next()
	}
}

// Pagination parses optional page/limit query parameters with defaults
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)
		if page < 1 || limit < 1 || limit > 100 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid pagination parameters!", nil)
		}
		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return bodyValidator("validatedCourse", func() interface{} { return new(CreateCourseRequest) })
}

func UpdateCourse() fiber.Handler {
	return bodyValidator("validatedCourseUpdate", func() interface{} { return new(UpdateCourseRequest) })
}

func CreateLesson() fiber.Handler {
	return bodyValidator("validatedLesson", func() interface{} { return new(CreateLessonRequest) })
}

func UpdateLesson() fiber.Handler {
	return bodyValidator("validatedLessonUpdate", func() interface{} { return new(UpdateLessonRequest) })
}

func CreateAssignment() fiber.Handler {
	return bodyValidator("validatedAssignment", func() interface{} { return new(CreateAssignmentRequest) })
}

func SubmitAssignment() fiber.Handler {
	return bodyValidator("validatedSubmission", func() interface{} { return new(SubmitRequest) })
}

func GradeSubmission() fiber.Handler {
	return bodyValidator("validatedGrade", func() interface{} { return new(GradeRequest) })
}

func CreateReview() fiber.Handler {
	return bodyValidator("validatedReview", func() interface{} { return new(ReviewRequest) })
}

func TagBody() fiber.Handler {
	return bodyValidator("validatedTag", func() interface{} { return new(TagRequest) })
}

func bodyValidator(localKey string, newReq func() interface{}) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := newReq()
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals(localKey, reqData)
		return c.Next()
	}
}

func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = "Validation failed!"
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = field + " is required!"
		case "min":
			out[field] = field + " must be at least " + fe.Param() + " characters long!"
		case "max":
			out[field] = field + " must be at most " + fe.Param() + " characters long!"
		case "gte":
			out[field] = field + " must be at least " + fe.Param() + "!"
		case "lte":
			out[field] = field + " must be at most " + fe.Param() + "!"
		case "oneof":
			out[field] = field + " must be one of: " + fe.Param() + "!"
		case "url":
			out[field] = field + " must be a valid URL!"
		default:
			out[field] = field + " is invalid!"
		}
	}
	return out
}
