package store

import "github.com/magabrotheeeer/teamsync/internal/models"

// Command — закрытый набор команд диспетчера. Реализовать его
// вне пакета нельзя из-за неэкспортируемого метода.
type Command interface {
	Name() string
	isCommand()
}

// Login вход по имени и паролю.
type Login struct {
	Request models.LoginRequest
}

// Register регистрирует пользователя и сразу выполняет вход.
type Register struct {
	Request models.RegisterRequest
}

// Logout выполняет синхронный выход и очищает постоянный слот.
type Logout struct{}

// ClearAuthError сбрасывает ошибку сессии.
type ClearAuthError struct{}

// ListProjects загружает страницу проектов. Page начинается с нуля,
// Size <= 0 заменяется на DefaultPageSize.
type ListProjects struct {
	Page int
	Size int
}

// CreateProject создаёт проект.
type CreateProject struct {
	Request models.ProjectCreateRequest
}

// ReadProject загружает проект в Focused.
type ReadProject struct {
	ID int64
}

// UpdateProject обновляет проект.
type UpdateProject struct {
	ID      int64
	Request models.ProjectUpdateRequest
}

// DeleteProject удаляет проект.
type DeleteProject struct {
	ID int64
}

// OpenCreateForm открывает форму создания.
type OpenCreateForm struct{}

// CloseCreateForm закрывает форму создания и сбрасывает ошибку.
type CloseCreateForm struct{}

// FocusProject выбирает проект без обращения к серверу; nil снимает выбор.
type FocusProject struct {
	Project *models.Project
}

// ClearFocus снимает выбор проекта.
type ClearFocus struct{}

// ClearProjectError сбрасывает ошибку коллекции проектов.
type ClearProjectError struct{}

// Name возвращает имя команды для логов и метрик.
func (Login) Name() string             { return "auth/login" }
func (Register) Name() string          { return "auth/register" }
func (Logout) Name() string            { return "auth/logout" }
func (ClearAuthError) Name() string    { return "auth/clearError" }
func (ListProjects) Name() string      { return "projects/list" }
func (CreateProject) Name() string     { return "projects/create" }
func (ReadProject) Name() string       { return "projects/read" }
func (UpdateProject) Name() string     { return "projects/update" }
func (DeleteProject) Name() string     { return "projects/delete" }
func (OpenCreateForm) Name() string    { return "projects/openCreateForm" }
func (CloseCreateForm) Name() string   { return "projects/closeCreateForm" }
func (FocusProject) Name() string      { return "projects/focus" }
func (ClearFocus) Name() string        { return "projects/clearFocus" }
func (ClearProjectError) Name() string { return "projects/clearError" }

func (Login) isCommand()             {}
func (Register) isCommand()          {}
func (Logout) isCommand()            {}
func (ClearAuthError) isCommand()    {}
func (ListProjects) isCommand()      {}
func (CreateProject) isCommand()     {}
func (ReadProject) isCommand()       {}
func (UpdateProject) isCommand()     {}
func (DeleteProject) isCommand()     {}
func (OpenCreateForm) isCommand()    {}
func (CloseCreateForm) isCommand()   {}
func (FocusProject) isCommand()      {}
func (ClearFocus) isCommand()        {}
func (ClearProjectError) isCommand() {}
