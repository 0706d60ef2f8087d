package domain

// Cluster - группа площадок, принадлежащих одному физическому объекту
type Cluster struct {
	// ID генерируется заново на каждый запуск пайплайна
	ID     string   `json:"id"`
	Sport  Sport    `json:"sport"`
	Courts []*Court `json:"courts"`

	// ResolvedName - имя фасилити, общее для всех участников кластера
	ResolvedName   *string  `json:"resolved_name,omitempty"`
	ResolvedSource *string  `json:"resolved_source,omitempty"`
	ResolvedDist   *float64 `json:"resolved_distance,omitempty"`
}

// Representative возвращает первого участника кластера.
// Его координаты используются для единственного geocoding-запроса на кластер.
func (c *Cluster) Representative() *Court {
	if len(c.Courts) == 0 {
		return nil
	}
	return c.Courts[0]
}

// Size возвращает количество площадок в кластере
func (c *Cluster) Size() int {
	return len(c.Courts)
}
