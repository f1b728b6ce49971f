package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/models"
)

func TestCourseLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)

	tutor := createUser(t, db, models.RoleTutor)
	otherTutor := createUser(t, db, models.RoleTutor)
	admin := createUser(t, db, models.RoleAdmin)

	course, err := svc.Create(tutor.ID, CourseInput{
		Title:       "Concurrency in Go",
		Description: "Goroutines and channels",
		Category:    "programming",
	})
	require.NoError(t, err)

	t.Run("new courses are drafts", func(t *testing.T) {
		assert.False(t, course.IsPublished)
		assert.Equal(t, "beginner", course.Level)
	})

	t.Run("only the owner or an admin may mutate", func(t *testing.T) {
		_, err := svc.Update(otherTutor.ID, models.RoleTutor, course.ID, CourseInput{Title: "Hijacked"})
		assert.ErrorIs(t, err, ErrForbidden)

		updated, err := svc.Update(admin.ID, models.RoleAdmin, course.ID, CourseInput{Level: "advanced"})
		require.NoError(t, err)
		assert.Equal(t, "advanced", updated.Level)
	})

	t.Run("publish flips visibility", func(t *testing.T) {
		published, err := svc.Publish(tutor.ID, models.RoleTutor, course.ID)
		require.NoError(t, err)
		assert.True(t, published.IsPublished)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := svc.Update(tutor.ID, models.RoleTutor, 99999, CourseInput{Title: "X"})
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestCourseList(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)

	tutor := createUser(t, db, models.RoleTutor)

	createCourse(t, db, tutor.ID, true)
	createCourse(t, db, tutor.ID, false) // draft stays hidden

	webCourse := models.Course{
		Title: "Web APIs", Description: "d", Category: "web",
		Level: "intermediate", TutorID: tutor.ID, IsPublished: true,
	}
	require.NoError(t, db.Create(&webCourse).Error)

	_, err := svc.AttachTag(tutor.ID, models.RoleTutor, webCourse.ID, "Backend")
	require.NoError(t, err)

	t.Run("lists only published courses", func(t *testing.T) {
		courses, total, err := svc.List(1, 10, "", "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, courses, 2)
	})

	t.Run("category filter", func(t *testing.T) {
		courses, total, err := svc.List(1, 10, "web", "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, courses, 1)
		assert.Equal(t, webCourse.ID, courses[0].ID)
	})

	t.Run("level filter", func(t *testing.T) {
		_, total, err := svc.List(1, 10, "", "beginner", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("tag filter is normalized", func(t *testing.T) {
		courses, total, err := svc.List(1, 10, "", "", "backend")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, courses, 1)
		assert.Equal(t, webCourse.ID, courses[0].ID)
	})

	t.Run("tutor listing includes drafts", func(t *testing.T) {
		_, total, err := svc.ListByTutor(tutor.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})
}

func TestCourseDetail(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)
	enrollments := NewEnrollmentService(db)

	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	createLessons(t, db, course.ID, 2)

	_, err := enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	t.Run("anonymous view", func(t *testing.T) {
		detail, err := svc.Get(course.ID, 0)
		require.NoError(t, err)
		assert.Len(t, detail.Lessons, 2)
		assert.False(t, detail.IsEnrolled)
		require.NotNil(t, detail.Course.Tutor)
		assert.Empty(t, detail.Course.Tutor.Password)
	})

	t.Run("enrolled viewer", func(t *testing.T) {
		detail, err := svc.Get(course.ID, student.ID)
		require.NoError(t, err)
		assert.True(t, detail.IsEnrolled)
	})

	t.Run("drafts are invisible", func(t *testing.T) {
		draft := createCourse(t, db, tutor.ID, false)
		_, err := svc.Get(draft.ID, 0)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestLessonManagement(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)

	tutor := createUser(t, db, models.RoleTutor)
	otherTutor := createUser(t, db, models.RoleTutor)
	course := createCourse(t, db, tutor.ID, true)

	lesson, err := svc.AddLesson(tutor.ID, models.RoleTutor, course.ID, LessonInput{
		Title: "Intro", Content: "hello", OrderIndex: 1,
	})
	require.NoError(t, err)

	t.Run("ownership is enforced", func(t *testing.T) {
		_, err := svc.AddLesson(otherTutor.ID, models.RoleTutor, course.ID, LessonInput{
			Title: "Sneaky", Content: "x",
		})
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = svc.UpdateLesson(otherTutor.ID, models.RoleTutor, lesson.ID, LessonInput{Title: "Sneaky"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("update keeps unset fields", func(t *testing.T) {
		updated, err := svc.UpdateLesson(tutor.ID, models.RoleTutor, lesson.ID, LessonInput{Title: "Intro v2"})
		require.NoError(t, err)
		assert.Equal(t, "Intro v2", updated.Title)
		assert.Equal(t, "hello", updated.Content)
	})

	t.Run("delete removes assignments and submissions", func(t *testing.T) {
		assignment := createAssignment(t, db, lesson.ID, 100)

		require.NoError(t, svc.DeleteLesson(tutor.ID, models.RoleTutor, lesson.ID))

		var count int64
		db.Unscoped().Model(&models.Assignment{}).Where("id = ?", assignment.ID).Count(&count)
		assert.Zero(t, count)

		_, err := svc.UpdateLesson(tutor.ID, models.RoleTutor, lesson.ID, LessonInput{Title: "Gone"})
		assert.ErrorIs(t, err, ErrLessonNotFound)
	})
}

func TestCourseDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)
	enrollments := NewEnrollmentService(db)

	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	course := createCourse(t, db, tutor.ID, true)
	lessons := createLessons(t, db, course.ID, 2)
	createAssignment(t, db, lessons[0].ID, 100)

	_, err := enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	_, err = svc.AttachTag(tutor.ID, models.RoleTutor, course.ID, "go")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(tutor.ID, models.RoleTutor, course.ID))

	for name, model := range map[string]interface{}{
		"lessons":         &models.Lesson{},
		"enrollments":     &models.Enrollment{},
		"lesson progress": &models.LessonProgress{},
		"assignments":     &models.Assignment{},
	} {
		var count int64
		db.Unscoped().Model(model).Count(&count)
		assert.Zero(t, count, "leftover %s after course delete", name)
	}
}

func TestTags(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)

	tutor := createUser(t, db, models.RoleTutor)
	course := createCourse(t, db, tutor.ID, true)

	t.Run("attach creates the tag on first use", func(t *testing.T) {
		tag, err := svc.AttachTag(tutor.ID, models.RoleTutor, course.ID, "  Golang ")
		require.NoError(t, err)
		assert.Equal(t, "golang", tag.Name)
	})

	t.Run("reattaching is idempotent", func(t *testing.T) {
		_, err := svc.AttachTag(tutor.ID, models.RoleTutor, course.ID, "golang")
		require.NoError(t, err)

		var count int64
		db.Model(&models.CourseTag{}).Where("course_id = ?", course.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("detach", func(t *testing.T) {
		require.NoError(t, svc.DetachTag(tutor.ID, models.RoleTutor, course.ID, "golang"))

		var count int64
		db.Model(&models.CourseTag{}).Where("course_id = ?", course.ID).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("detaching an unknown tag", func(t *testing.T) {
		err := svc.DetachTag(tutor.ID, models.RoleTutor, course.ID, "rust")
		assert.ErrorIs(t, err, ErrTagNotFound)
	})
}
