// Package visual строит visual story: таймлайн проекта в виде "сада камней".
//
// Каждая запись датасета становится колонкой: пунктирная дорожка от нуля
// до длительности задачи и камень на её вершине, окрашенный по статусу
// (Completed, In Progress, Pending). Над камнем подпись с именем задачи,
// внизу слева легенда, сверху заголовок.
//
// Generate строит раскладку и рисует её нейтральной палитрой.
// ApplyAesthetics (Stylist.Apply) меняет палитру и декор под выбранный стиль
// и перерисовывает холст на месте.
//
// Стили регистрируются в Registry:
//
//	registry := visual.DefaultRegistry() // ukiyo-e, sumi-e, minimalist
//	aesthetic, err := registry.Get(domain.StyleSumiE)
package visual
