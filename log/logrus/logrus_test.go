package logrus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/cachestore"
)

func TestFields(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	New(base).Debug("transport connected", cachestore.Fields{"addr": "localhost:11211"})

	out := buf.String()
	for _, want := range []string{"component=cachestore", `addr="localhost:11211"`, "transport connected"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}
