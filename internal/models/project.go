package models

import "time"

// DateLayout — формат календарных дат проекта (startDate, endDate).
const DateLayout = "2006-01-02"

// DefaultColor — цвет проекта, который сервер назначает при его отсутствии.
const DefaultColor = "#1976d2"

// ProjectStatus — стадия жизненного цикла проекта.
type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "PLANNING"
	StatusActive    ProjectStatus = "ACTIVE"
	StatusOnHold    ProjectStatus = "ON_HOLD"
	StatusCompleted ProjectStatus = "COMPLETED"
	StatusCancelled ProjectStatus = "CANCELLED"
)

// Valid сообщает, входит ли статус в допустимый набор.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ProjectPriority — приоритет проекта.
type ProjectPriority string

const (
	PriorityLow      ProjectPriority = "LOW"
	PriorityMedium   ProjectPriority = "MEDIUM"
	PriorityHigh     ProjectPriority = "HIGH"
	PriorityCritical ProjectPriority = "CRITICAL"
)

// Valid сообщает, входит ли приоритет в допустимый набор.
func (p ProjectPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Project представляет проект в том виде, в каком его возвращает API.
type Project struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Status      ProjectStatus   `json:"status"`
	Priority    ProjectPriority `json:"priority"`
	StartDate   *string         `json:"startDate,omitempty"`
	EndDate     *string         `json:"endDate,omitempty"`
	Color       string          `json:"color"`
	OwnerID     int64           `json:"ownerId"`
	OwnerName   string          `json:"ownerName"`
	MemberCount int             `json:"memberCount"`
	TaskCount   int             `json:"taskCount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProjectCreateRequest — данные для создания проекта.
// Ограничения на даты (endDate не раньше startDate) проверяются
// на уровне структуры в пакете validate.
type ProjectCreateRequest struct {
	Name        string           `json:"name" validate:"required,notblank,max=100"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Status      *ProjectStatus   `json:"status,omitempty" validate:"omitempty,oneof=PLANNING ACTIVE ON_HOLD COMPLETED CANCELLED"`
	Priority    *ProjectPriority `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	StartDate   *string          `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string          `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Color       *string          `json:"color,omitempty" validate:"omitempty,max=20"`
}

// WithDefaults возвращает копию запроса, в которой отсутствующие
// статус и приоритет заменены на PLANNING и MEDIUM.
func (r ProjectCreateRequest) WithDefaults() ProjectCreateRequest {
	if r.Status == nil {
		s := StatusPlanning
		r.Status = &s
	}
	if r.Priority == nil {
		p := PriorityMedium
		r.Priority = &p
	}
	return r
}

// ProjectUpdateRequest — данные для обновления проекта.
// Поля status, priority и color при отсутствии сохраняют прежние значения.
type ProjectUpdateRequest struct {
	Name        string           `json:"name" validate:"required,notblank,max=100"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Status      *ProjectStatus   `json:"status,omitempty" validate:"omitempty,oneof=PLANNING ACTIVE ON_HOLD COMPLETED CANCELLED"`
	Priority    *ProjectPriority `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	StartDate   *string          `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string          `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Color       *string          `json:"color,omitempty" validate:"omitempty,max=20"`
}

// ProjectsPage — страница проектов в формате конверта пагинации сервера.
// Number индекс страницы, начиная с нуля.
type ProjectsPage struct {
	Content       []Project `json:"content"`
	TotalElements int       `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Size          int       `json:"size"`
	Number        int       `json:"number"`
	First         bool      `json:"first"`
	Last          bool      `json:"last"`
}

// Clone возвращает копию проекта, не разделяющую указатели с оригиналом.
func (p Project) Clone() Project {
	p.Description = cloneString(p.Description)
	p.StartDate = cloneString(p.StartDate)
	p.EndDate = cloneString(p.EndDate)
	return p
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
