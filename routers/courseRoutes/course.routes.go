package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	"learnhub/models"
	validators "learnhub/validators/course"
)

// SetupCourseRoutes registers the course catalog, tutor management,
// enrollment, grading and review routes. protected requires a valid bearer
// token; optionalAuth resolves one when present but lets anonymous through.
func SetupCourseRoutes(app *fiber.App, ctl *controllers.Controller, protected, optionalAuth fiber.Handler) {
	tutorOnly := middleware.RequireRoles(models.RoleTutor, models.RoleAdmin)
	moderatorOnly := middleware.RequireRoles(models.RoleModerator, models.RoleAdmin)

	courseGroup := app.Group("/course")

	// Catalog (anonymous allowed)
	courseGroup.Get("/list", optionalAuth, validators.Pagination(), ctl.ListCourses)
	courseGroup.Get("/:id", optionalAuth, validators.IDParam("id", "courseID"), ctl.GetCourse)
	courseGroup.Get("/:id/lessons", optionalAuth, validators.IDParam("id", "courseID"), ctl.ListLessons)

	// Tutor course management
	courseGroup.Post("/", protected, tutorOnly, validators.CreateCourse(), ctl.CreateCourse)
	courseGroup.Patch("/:id", protected, tutorOnly, validators.IDParam("id", "courseID"), validators.UpdateCourse(), ctl.UpdateCourse)
	courseGroup.Delete("/:id", protected, tutorOnly, validators.IDParam("id", "courseID"), ctl.DeleteCourse)
	courseGroup.Patch("/:id/publish", protected, tutorOnly, validators.IDParam("id", "courseID"), ctl.PublishCourse)
	courseGroup.Post("/:id/lesson", protected, tutorOnly, validators.IDParam("id", "courseID"), validators.CreateLesson(), ctl.AddLesson)
	courseGroup.Post("/:id/tag", protected, tutorOnly, validators.IDParam("id", "courseID"), validators.TagBody(), ctl.AttachTag)
	courseGroup.Delete("/:id/tag", protected, tutorOnly, validators.IDParam("id", "courseID"), validators.TagBody(), ctl.DetachTag)

	// Lessons and assignments
	lessonGroup := app.Group("/lesson")
	lessonGroup.Patch("/:id", protected, tutorOnly, validators.IDParam("id", "lessonID"), validators.UpdateLesson(), ctl.UpdateLesson)
	lessonGroup.Delete("/:id", protected, tutorOnly, validators.IDParam("id", "lessonID"), ctl.DeleteLesson)
	lessonGroup.Post("/:id/assignment", protected, tutorOnly, validators.IDParam("id", "lessonID"), validators.CreateAssignment(), ctl.AddAssignment)
	lessonGroup.Post("/:id/complete", protected, validators.IDParam("id", "lessonID"), ctl.CompleteLesson)

	assignmentGroup := app.Group("/assignment")
	assignmentGroup.Delete("/:id", protected, tutorOnly, validators.IDParam("id", "assignmentID"), ctl.DeleteAssignment)
	assignmentGroup.Get("/:id/submissions", protected, tutorOnly, validators.IDParam("id", "assignmentID"), ctl.ListSubmissions)
	assignmentGroup.Post("/:id/submit", protected, validators.IDParam("id", "assignmentID"), validators.SubmitAssignment(), ctl.SubmitAssignment)

	submissionGroup := app.Group("/submission")
	submissionGroup.Patch("/:id/grade", protected, tutorOnly, validators.IDParam("id", "submissionID"), validators.GradeSubmission(), ctl.GradeSubmission)

	// Enrollment and progress
	courseGroup.Post("/:id/enroll", protected, validators.IDParam("id", "courseID"), ctl.Enroll)
	courseGroup.Delete("/:id/enroll", protected, validators.IDParam("id", "courseID"), ctl.Unenroll)
	courseGroup.Get("/:id/progress", protected, validators.IDParam("id", "courseID"), ctl.GetProgress)

	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", protected, validators.Pagination(), ctl.MyEnrollments)
	userGroup.Get("/submissions", protected, ctl.MySubmissions)
	userGroup.Get("/courses", protected, tutorOnly, validators.Pagination(), ctl.MyCourses)

	// Reviews
	courseGroup.Post("/:id/review", protected, validators.IDParam("id", "courseID"), validators.CreateReview(), ctl.CreateReview)

	reviewGroup := app.Group("/review")
	reviewGroup.Get("/pending", protected, moderatorOnly, validators.Pagination(), ctl.ListPendingReviews)
	reviewGroup.Patch("/:id/approve", protected, moderatorOnly, validators.IDParam("id", "reviewID"), ctl.ApproveReview)
	reviewGroup.Delete("/:id", protected, moderatorOnly, validators.IDParam("id", "reviewID"), ctl.RemoveReview)
}
