package store

import (
	"sync"

	"github.com/magabrotheeeer/teamsync/internal/models"
)

// ProjectsState — снимок коллекции проектов.
// Инвариант: len(Items) <= TotalElements.
type ProjectsState struct {
	Items            []models.Project `json:"items"`
	Focused          *models.Project  `json:"focused"`
	TotalElements    int              `json:"totalElements"`
	TotalPages       int              `json:"totalPages"`
	CurrentPage      int              `json:"currentPage"`
	IsLoading        bool             `json:"isLoading"`
	LastError        string           `json:"error,omitempty"`
	IsCreateFormOpen bool             `json:"isCreateFormOpen"`
}

// Projects хранит текущую страницу проектов, выбранный проект и флаги UI.
// IsLoading общий для всех команд проектов: побеждает последнее завершение.
type Projects struct {
	mu    sync.RWMutex
	state ProjectsState
}

// NewProjects создаёт пустую коллекцию.
func NewProjects() *Projects {
	return &Projects{}
}

// Snapshot возвращает копию текущего состояния.
func (p *Projects) Snapshot() ProjectsState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	st := p.state
	st.Items = make([]models.Project, len(p.state.Items))
	for i, item := range p.state.Items {
		st.Items[i] = item.Clone()
	}
	if st.Focused != nil {
		f := st.Focused.Clone()
		st.Focused = &f
	}
	return st
}

func (p *Projects) pending() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.IsLoading = true
	p.state.LastError = ""
}

// rejected оставляет элементы как есть: устаревшие, но видимые.
func (p *Projects) rejected(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.IsLoading = false
	p.state.LastError = msg
}

// listFulfilled полностью заменяет страницу, без слияния.
func (p *Projects) listFulfilled(page models.ProjectsPage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.IsLoading = false
	p.state.Items = make([]models.Project, len(page.Content))
	for i, item := range page.Content {
		p.state.Items[i] = item.Clone()
	}
	p.state.TotalElements = page.TotalElements
	p.state.TotalPages = page.TotalPages
	p.state.CurrentPage = page.Number
}

// createFulfilled добавляет проект в начало списка и закрывает форму.
func (p *Projects) createFulfilled(project models.Project) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.IsLoading = false
	items := make([]models.Project, 0, len(p.state.Items)+1)
	items = append(items, project.Clone())
	p.state.Items = append(items, p.state.Items...)
	p.state.TotalElements++
	p.state.IsCreateFormOpen = false
}

func (p *Projects) readFulfilled(project models.Project) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.IsLoading = false
	f := project.Clone()
	p.state.Focused = &f
}

// updateFulfilled заменяет проект на месте; отсутствующий id игнорируется.
func (p *Projects) updateFulfilled(project models.Project) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.IsLoading = false
	for i := range p.state.Items {
		if p.state.Items[i].ID == project.ID {
			p.state.Items[i] = project.Clone()
			break
		}
	}
	if p.state.Focused != nil && p.state.Focused.ID == project.ID {
		f := project.Clone()
		p.state.Focused = &f
	}
}

func (p *Projects) deleteFulfilled(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.IsLoading = false
	items := p.state.Items[:0:0]
	for _, item := range p.state.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	p.state.Items = items
	// Счётчик не опускается ниже длины текущей страницы.
	p.state.TotalElements = max(p.state.TotalElements-1, len(items))
	if p.state.Focused != nil && p.state.Focused.ID == id {
		p.state.Focused = nil
	}
}

func (p *Projects) openCreateForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.IsCreateFormOpen = true
}

func (p *Projects) closeCreateForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.IsCreateFormOpen = false
	p.state.LastError = ""
}

func (p *Projects) focus(project *models.Project) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if project == nil {
		p.state.Focused = nil
		return
	}
	f := project.Clone()
	p.state.Focused = &f
}

func (p *Projects) clearError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.LastError = ""
}
