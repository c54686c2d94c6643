package quadtree

import (
	"log/slog"
	"time"
)

// logBuild reports the outcome of Build. t is nil when err is non-nil.
func logBuild(l *slog.Logger, points int, t *Tree, elapsed time.Duration, err error) {
	if err != nil {
		l.Warn("quadtree build failed",
			"points", points,
			"duration", elapsed,
			"error", err,
		)
		return
	}
	st := t.Stats()
	l.Debug("quadtree built",
		"points", st.Points,
		"dims", t.dims,
		"nodes", st.Nodes,
		"leaves", st.Leaves,
		"stopped", st.Stopped,
		"depth", st.Depth,
		"duration", elapsed,
	)
}
