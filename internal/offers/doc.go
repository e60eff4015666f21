// Package offers движок предложений витрины. Превращает сырые записи своего
// склада и поставщиков в domain.Offer, сопоставляет позиции корзины с
// предложениями, ранжирует витрину и сверяет остатки с корзиной.
//
// Всё здесь чистые синхронные функции без состояния. Снимок позиций корзины
// передаётся при каждом вызове.
//
// Основное:
//   - NormalizeInternal, NormalizeExternal, NormalizeProduct: разбор сырых данных
//   - Matches, ExistingQuantity: идентичность предложения и позиции корзины
//   - Sort, SortState: детерминированный порядок, приоритетные первыми
//   - Remaining, ValidateAdd: сколько можно добавить и проверка добавления
//   - Apply, BuildFacets, BestOffers: фильтры и выделенные предложения
package offers
