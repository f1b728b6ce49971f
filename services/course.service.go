package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"learnhub/models"
)

// CourseService owns course, lesson, assignment and tag management.
// Tutors may only mutate their own courses; admins may mutate any.
type CourseService struct {
	db *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

// CourseInput carries the course fields accepted from tutors
type CourseInput struct {
	Title        string
	Description  string
	Category     string
	Level        string
	ThumbnailURL string
}

// LessonInput carries the lesson fields accepted from tutors
type LessonInput struct {
	Title      string
	Content    string
	VideoURL   string
	OrderIndex int
}

// AssignmentInput carries the assignment fields accepted from tutors
type AssignmentInput struct {
	Title       string
	Description string
	MaxScore    int
}

// CourseDetail is the public view of a single course
type CourseDetail struct {
	Course     models.Course   `json:"course"`
	Lessons    []models.Lesson `json:"lessons"`
	Tags       []models.Tag    `json:"tags"`
	Reviews    []models.Review `json:"reviews"`
	IsEnrolled bool            `json:"is_enrolled"`
}

// mutableCourse loads a course and enforces the ownership contract:
// the owning tutor or an admin may mutate, nobody else.
func (s *CourseService) mutableCourse(actorID uint, actorRole string, courseID uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		return nil, ErrCourseNotFound
	}
	if actorRole != models.RoleAdmin && course.TutorID != actorID {
		return nil, ErrForbidden
	}
	return &course, nil
}

// Create creates a new draft course owned by the tutor
func (s *CourseService) Create(tutorID uint, in CourseInput) (*models.Course, error) {
	course := models.Course{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Level:        in.Level,
		ThumbnailURL: in.ThumbnailURL,
		TutorID:      tutorID,
		IsPublished:  false,
	}
	if course.Level == "" {
		course.Level = "beginner"
	}
	if err := s.db.Create(&course).Error; err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return &course, nil
}

// Update updates the provided fields of a course the actor may mutate
func (s *CourseService) Update(actorID uint, actorRole string, courseID uint, in CourseInput) (*models.Course, error) {
	course, err := s.mutableCourse(actorID, actorRole, courseID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		course.Title = in.Title
	}
	if in.Description != "" {
		course.Description = in.Description
	}
	if in.Category != "" {
		course.Category = in.Category
	}
	if in.Level != "" {
		course.Level = in.Level
	}
	if in.ThumbnailURL != "" {
		course.ThumbnailURL = in.ThumbnailURL
	}

	if err := s.db.Save(course).Error; err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

// Publish makes a draft course visible for enrollment
func (s *CourseService) Publish(actorID uint, actorRole string, courseID uint) (*models.Course, error) {
	course, err := s.mutableCourse(actorID, actorRole, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(course).Update("is_published", true).Error; err != nil {
		return nil, fmt.Errorf("failed to publish course: %w", err)
	}
	course.IsPublished = true
	return course, nil
}

// Delete removes a course and everything hanging off it in one transaction
func (s *CourseService) Delete(actorID uint, actorRole string, courseID uint) error {
	course, err := s.mutableCourse(actorID, actorRole, courseID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var enrollmentIDs []uint
		if err := tx.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).
			Pluck("id", &enrollmentIDs).Error; err != nil {
			return err
		}
		if len(enrollmentIDs) > 0 {
			if err := tx.Unscoped().Where("enrollment_id IN ?", enrollmentIDs).
				Delete(&models.LessonProgress{}).Error; err != nil {
				return err
			}
		}

		var lessonIDs []uint
		if err := tx.Model(&models.Lesson{}).Where("course_id = ?", course.ID).
			Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			var assignmentIDs []uint
			if err := tx.Model(&models.Assignment{}).Where("lesson_id IN ?", lessonIDs).
				Pluck("id", &assignmentIDs).Error; err != nil {
				return err
			}
			if len(assignmentIDs) > 0 {
				if err := tx.Unscoped().Where("assignment_id IN ?", assignmentIDs).
					Delete(&models.Submission{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Unscoped().Where("lesson_id IN ?", lessonIDs).
				Delete(&models.Assignment{}).Error; err != nil {
				return err
			}
		}

		for _, step := range []error{
			tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Enrollment{}).Error,
			tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Lesson{}).Error,
			tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.CourseTag{}).Error,
			tx.Unscoped().Where("course_id = ?", course.ID).Delete(&models.Review{}).Error,
			tx.Unscoped().Delete(course).Error,
		} {
			if step != nil {
				return step
			}
		}
		return nil
	})
}

// List returns published courses with pagination and optional filters
func (s *CourseService) List(page, limit int, category, level, tag string) ([]models.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := s.db.Model(&models.Course{}).Where("is_published = ?", true)
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if level != "" {
		db = db.Where("level = ?", level)
	}
	if tag != "" {
		db = db.Joins("JOIN course_tags ON course_tags.course_id = courses.id").
			Joins("JOIN tags ON tags.id = course_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	var total int64
	db.Count(&total)

	var courses []models.Course
	err := db.Offset((page - 1) * limit).Limit(limit).Order("created_at desc").Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch courses: %w", err)
	}
	return courses, total, nil
}

// ListByTutor returns every course the tutor owns, drafts included
func (s *CourseService) ListByTutor(tutorID uint, page, limit int) ([]models.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := s.db.Model(&models.Course{}).Where("tutor_id = ?", tutorID)

	var total int64
	db.Count(&total)

	var courses []models.Course
	err := db.Offset((page - 1) * limit).Limit(limit).Order("created_at desc").Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch courses: %w", err)
	}
	return courses, total, nil
}

// Get returns a published course with its lessons, tags, approved reviews and
// the viewer's enrollment state. viewerID may be zero for anonymous access.
func (s *CourseService) Get(courseID, viewerID uint) (*CourseDetail, error) {
	var course models.Course
	if err := s.db.Preload("Tutor").Where("is_published = ?", true).First(&course, courseID).Error; err != nil {
		return nil, ErrCourseNotFound
	}
	if course.Tutor != nil {
		course.Tutor.Password = ""
	}

	detail := &CourseDetail{Course: course}

	if err := s.db.Where("course_id = ?", courseID).Order("order_index asc").
		Find(&detail.Lessons).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch lessons: %w", err)
	}

	if err := s.db.Joins("JOIN course_tags ON course_tags.tag_id = tags.id").
		Where("course_tags.course_id = ?", courseID).Find(&detail.Tags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}

	if err := s.db.Where("course_id = ? AND status = ?", courseID, models.ReviewApproved).
		Order("created_at desc").Find(&detail.Reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	if viewerID > 0 {
		err := s.db.Where("student_id = ? AND course_id = ?", viewerID, courseID).
			First(&models.Enrollment{}).Error
		detail.IsEnrolled = err == nil
	}

	return detail, nil
}

// AddLesson appends a lesson to a course the actor may mutate
func (s *CourseService) AddLesson(actorID uint, actorRole string, courseID uint, in LessonInput) (*models.Lesson, error) {
	course, err := s.mutableCourse(actorID, actorRole, courseID)
	if err != nil {
		return nil, err
	}

	lesson := models.Lesson{
		CourseID:   course.ID,
		Title:      in.Title,
		Content:    in.Content,
		VideoURL:   in.VideoURL,
		OrderIndex: in.OrderIndex,
	}
	if err := s.db.Create(&lesson).Error; err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	return &lesson, nil
}

// UpdateLesson updates the provided lesson fields
func (s *CourseService) UpdateLesson(actorID uint, actorRole string, lessonID uint, in LessonInput) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := s.db.First(&lesson, lessonID).Error; err != nil {
		return nil, ErrLessonNotFound
	}
	if _, err := s.mutableCourse(actorID, actorRole, lesson.CourseID); err != nil {
		return nil, err
	}

	if in.Title != "" {
		lesson.Title = in.Title
	}
	if in.Content != "" {
		lesson.Content = in.Content
	}
	if in.VideoURL != "" {
		lesson.VideoURL = in.VideoURL
	}
	if in.OrderIndex > 0 {
		lesson.OrderIndex = in.OrderIndex
	}

	if err := s.db.Save(&lesson).Error; err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}
	return &lesson, nil
}

// DeleteLesson removes a lesson with its progress rows and assignments
func (s *CourseService) DeleteLesson(actorID uint, actorRole string, lessonID uint) error {
	var lesson models.Lesson
	if err := s.db.First(&lesson, lessonID).Error; err != nil {
		return ErrLessonNotFound
	}
	if _, err := s.mutableCourse(actorID, actorRole, lesson.CourseID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var assignmentIDs []uint
		if err := tx.Model(&models.Assignment{}).Where("lesson_id = ?", lesson.ID).
			Pluck("id", &assignmentIDs).Error; err != nil {
			return err
		}
		if len(assignmentIDs) > 0 {
			if err := tx.Unscoped().Where("assignment_id IN ?", assignmentIDs).
				Delete(&models.Submission{}).Error; err != nil {
				return err
			}
		}
		for _, step := range []error{
			tx.Unscoped().Where("lesson_id = ?", lesson.ID).Delete(&models.Assignment{}).Error,
			tx.Unscoped().Where("lesson_id = ?", lesson.ID).Delete(&models.LessonProgress{}).Error,
			tx.Unscoped().Delete(&lesson).Error,
		} {
			if step != nil {
				return step
			}
		}
		return nil
	})
}

// ListLessons returns a course's lessons in display order
func (s *CourseService) ListLessons(courseID uint) ([]models.Lesson, error) {
	if err := s.db.First(&models.Course{}, courseID).Error; err != nil {
		return nil, ErrCourseNotFound
	}
	var lessons []models.Lesson
	err := s.db.Where("course_id = ?", courseID).Order("order_index asc").Find(&lessons).Error
	return lessons, err
}

// AddAssignment attaches an assignment to a lesson of a course the actor may mutate
func (s *CourseService) AddAssignment(actorID uint, actorRole string, lessonID uint, in AssignmentInput) (*models.Assignment, error) {
	var lesson models.Lesson
	if err := s.db.First(&lesson, lessonID).Error; err != nil {
		return nil, ErrLessonNotFound
	}
	if _, err := s.mutableCourse(actorID, actorRole, lesson.CourseID); err != nil {
		return nil, err
	}

	assignment := models.Assignment{
		LessonID:    lesson.ID,
		Title:       in.Title,
		Description: in.Description,
		MaxScore:    in.MaxScore,
	}
	if assignment.MaxScore <= 0 {
		assignment.MaxScore = 100
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return &assignment, nil
}

// DeleteAssignment removes an assignment with its submissions
func (s *CourseService) DeleteAssignment(actorID uint, actorRole string, assignmentID uint) error {
	var assignment models.Assignment
	if err := s.db.Preload("Lesson").First(&assignment, assignmentID).Error; err != nil {
		return ErrAssignmentNotFound
	}
	if _, err := s.mutableCourse(actorID, actorRole, assignment.Lesson.CourseID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("assignment_id = ?", assignment.ID).
			Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&assignment).Error
	})
}

// AttachTag links a tag to the course, creating the tag on first use
func (s *CourseService) AttachTag(actorID uint, actorRole string, courseID uint, tagName string) (*models.Tag, error) {
	course, err := s.mutableCourse(actorID, actorRole, courseID)
	if err != nil {
		return nil, err
	}

	tagName = strings.ToLower(strings.TrimSpace(tagName))

	var tag models.Tag
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", tagName).First(&tag).Error; err != nil {
			tag = models.Tag{Name: tagName}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}
		var existing models.CourseTag
		if err := tx.Where("course_id = ? AND tag_id = ?", course.ID, tag.ID).
			First(&existing).Error; err == nil {
			return nil // already attached
		}
		return tx.Create(&models.CourseTag{CourseID: course.ID, TagID: tag.ID}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to attach tag: %w", err)
	}
	return &tag, nil
}

// DetachTag unlinks a tag from the course
func (s *CourseService) DetachTag(actorID uint, actorRole string, courseID uint, tagName string) error {
	course, err := s.mutableCourse(actorID, actorRole, courseID)
	if err != nil {
		return err
	}

	var tag models.Tag
	if err := s.db.Where("name = ?", strings.ToLower(strings.TrimSpace(tagName))).
		First(&tag).Error; err != nil {
		return ErrTagNotFound
	}

	return s.db.Unscoped().Where("course_id = ? AND tag_id = ?", course.ID, tag.ID).
		Delete(&models.CourseTag{}).Error
}
