package repository

import (
	"context"
	"slices"

	"autoparts/internal/domain"
)

var _ CartRepository = (*MemoryStore)(nil)

// Lines возвращает копию позиций корзины; неизвестная корзина пуста
func (m *MemoryStore) Lines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	defer m.read(ctx)()
	return slices.Clone(m.carts[cartID]), nil
}

func (m *MemoryStore) AddLine(ctx context.Context, cartID string, line *domain.CartLine) error {
	defer m.write(ctx)()
	line.CreatedAt = m.now()
	line.UpdatedAt = line.CreatedAt
	m.carts[cartID] = append(m.carts[cartID], *line)
	return nil
}

func (m *MemoryStore) UpdateQuantity(ctx context.Context, cartID, lineID string, qty int64) error {
	return m.updateLine(ctx, cartID, lineID, func(l *domain.CartLine) { l.Quantity = qty })
}

func (m *MemoryStore) SetSelected(ctx context.Context, cartID, lineID string, selected bool) error {
	return m.updateLine(ctx, cartID, lineID, func(l *domain.CartLine) { l.Selected = selected })
}

func (m *MemoryStore) updateLine(ctx context.Context, cartID, lineID string, fn func(*domain.CartLine)) error {
	defer m.write(ctx)()
	lines := m.carts[cartID]
	i := slices.IndexFunc(lines, func(l domain.CartLine) bool { return l.ID == lineID })
	if i < 0 {
		return ErrNotFound
	}
	fn(&lines[i])
	lines[i].UpdatedAt = m.now()
	return nil
}

func (m *MemoryStore) RemoveLine(ctx context.Context, cartID, lineID string) error {
	defer m.write(ctx)()
	lines := m.carts[cartID]
	i := slices.IndexFunc(lines, func(l domain.CartLine) bool { return l.ID == lineID })
	if i < 0 {
		return ErrNotFound
	}
	m.carts[cartID] = slices.Delete(lines, i, i+1)
	return nil
}

// RemoveLines удаляет перечисленные позиции, отсутствующие пропускаются
func (m *MemoryStore) RemoveLines(ctx context.Context, cartID string, lineIDs []string) error {
	defer m.write(ctx)()
	m.carts[cartID] = slices.DeleteFunc(m.carts[cartID], func(l domain.CartLine) bool {
		return slices.Contains(lineIDs, l.ID)
	})
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, cartID string) error {
	defer m.write(ctx)()
	delete(m.carts, cartID)
	return nil
}
