package viewmodel

import (
	"context"
	"fmt"
	"strings"
)

// listSource operaciones y textos que diferencian cada pantalla de listado.
type listSource[T any] struct {
	list   func(context.Context) ([]T, error)
	search func(context.Context, string) ([]T, error)
	remove func(context.Context, int64) error
	id     func(T) int64
	label  func(T) string

	loadError string // "Cariler yüklenirken hata oluştu"
	deleted   string // "Cari başarıyla silindi."
}

// listModel listado con búsqueda, selección y borrado confirmado.
type listModel[T any] struct {
	state
	src     listSource[T]
	confirm Confirmer

	items      []T
	selected   int64
	searchText string
}

func newListModel[T any](src listSource[T], confirm Confirmer) *listModel[T] {
	return &listModel[T]{src: src, confirm: confirm}
}

// Items copia de las filas actuales.
func (m *listModel[T]) Items() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]T(nil), m.items...)
}

func (m *listModel[T]) SearchText() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.searchText
}

// Load trae el listado completo.
func (m *listModel[T]) Load(ctx context.Context) error {
	return m.fetch(ctx, "", m.src.loadError)
}

// SetSearchText guarda el texto y vuelve a consultar. En blanco recarga el listado completo.
func (m *listModel[T]) SetSearchText(ctx context.Context, q string) error {
	m.mu.Lock()
	m.searchText = q
	m.mu.Unlock()
	m.changed(PropSearch)

	if strings.TrimSpace(q) == "" {
		return m.Load(ctx)
	}
	return m.fetch(ctx, q, "Arama yapılırken hata oluştu")
}

func (m *listModel[T]) fetch(ctx context.Context, q, errPrefix string) error {
	m.begin()
	defer m.end()

	var (
		rows []T
		err  error
	)
	if q == "" {
		rows, err = m.src.list(ctx)
	} else {
		rows, err = m.src.search(ctx, strings.TrimSpace(q))
	}
	if err != nil {
		m.fail(fmt.Sprintf("%s: %s", errPrefix, err))
		return err
	}

	m.mu.Lock()
	m.items = rows
	if m.indexOf(m.selected) < 0 {
		m.selected = 0
	}
	m.mu.Unlock()
	m.changed(PropItems, PropSelected)
	return nil
}

// indexOf posición de la fila con ese id o -1. Requiere m.mu.
func (m *listModel[T]) indexOf(id int64) int {
	if id == 0 {
		return -1
	}
	for i, it := range m.items {
		if m.src.id(it) == id {
			return i
		}
	}
	return -1
}

// Select marca la fila con ese id. Devuelve false si no está en el listado.
func (m *listModel[T]) Select(id int64) bool {
	m.mu.Lock()
	ok := m.indexOf(id) >= 0
	if ok {
		m.selected = id
	}
	m.mu.Unlock()
	if ok {
		m.changed(PropSelected)
	}
	return ok
}

func (m *listModel[T]) ClearSelection() {
	m.mu.Lock()
	m.selected = 0
	m.mu.Unlock()
	m.changed(PropSelected)
}

// Selected fila seleccionada.
func (m *listModel[T]) Selected() (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var zero T
	if i := m.indexOf(m.selected); i >= 0 {
		return m.items[i], true
	}
	return zero, false
}

// CanEdit y CanDelete habilitan los comandos solo con una fila seleccionada.
func (m *listModel[T]) CanEdit() bool {
	_, ok := m.Selected()
	return ok
}

func (m *listModel[T]) CanDelete() bool {
	return m.CanEdit()
}

// Delete borra la fila seleccionada tras confirmación. Devuelve true si se borró.
func (m *listModel[T]) Delete(ctx context.Context) (bool, error) {
	row, ok := m.Selected()
	if !ok {
		return false, nil
	}
	msg := fmt.Sprintf("'%s' silinecek. Emin misiniz?", m.src.label(row))
	if m.confirm == nil || !m.confirm("Silme Onayı", msg) {
		return false, nil
	}

	m.begin()
	defer m.end()

	id := m.src.id(row)
	if err := m.src.remove(ctx, id); err != nil {
		m.fail(fmt.Sprintf("Silme işlemi sırasında hata oluştu: %s", err))
		return false, err
	}

	m.mu.Lock()
	if i := m.indexOf(id); i >= 0 {
		m.items = append(m.items[:i:i], m.items[i+1:]...)
	}
	m.selected = 0
	m.mu.Unlock()
	m.changed(PropItems, PropSelected)
	m.inform(m.src.deleted)
	return true, nil
}
