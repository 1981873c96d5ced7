package artifact

import (
	"slices"
	"testing"

	"github.com/streamshub/alignreport/pkg/errors"
)

func TestCoordinateString(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinate
		want string
	}{
		{
			name: "no classifier",
			c:    Coordinate{GroupID: "org.apache.kafka", ArtifactID: "kafka-clients", Version: "3.7.0", Type: "jar"},
			want: "org.apache.kafka:kafka-clients:3.7.0:jar",
		},
		{
			name: "classifier",
			c:    Coordinate{GroupID: "io.netty", ArtifactID: "netty-transport-native-epoll", Version: "4.1.100", Type: "jar", Classifier: "linux-x86_64"},
			want: "io.netty:netty-transport-native-epoll:4.1.100:jar:linux-x86_64",
		},
		{
			name: "scope is not rendered",
			c:    Coordinate{GroupID: "g", ArtifactID: "a", Version: "1", Type: "jar", Scope: "test"},
			want: "g:a:1:jar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCoordinateEqualIgnoresScope(t *testing.T) {
	a := Coordinate{GroupID: "g", ArtifactID: "a", Version: "1", Type: "jar", Scope: "compile"}
	b := a
	b.Scope = "test"

	if !a.Equal(b) {
		t.Error("coordinates differing only in scope should be equal")
	}
	if a.Key() != b.Key() {
		t.Error("keys differing only in scope should be equal")
	}

	b.Classifier = "tests"
	if a.Equal(b) {
		t.Error("coordinates differing in classifier should not be equal")
	}
}

func TestCompare(t *testing.T) {
	cs := []Coordinate{
		{GroupID: "org.b", ArtifactID: "x", Version: "1"},
		{GroupID: "com.a", ArtifactID: "z", Version: "1"},
		{GroupID: "com.a", ArtifactID: "b", Version: "2"},
		{GroupID: "com.a", ArtifactID: "b", Version: "1"},
	}
	slices.SortStableFunc(cs, Compare)

	want := []string{"com.a:b:2", "com.a:b:1", "com.a:z:1", "org.b:x:1"}
	for i, c := range cs {
		got := c.GroupID + ":" + c.ArtifactID + ":" + c.Version
		if got != want[i] {
			t.Errorf("position %d = %s, want %s", i, got, want[i])
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Coordinate
		wantErr bool
	}{
		{
			input: "com.example:app:1.0",
			want:  Coordinate{GroupID: "com.example", ArtifactID: "app", Version: "1.0", Type: "jar"},
		},
		{
			input: "com.example:app:pom:1.0",
			want:  Coordinate{GroupID: "com.example", ArtifactID: "app", Version: "1.0", Type: "pom"},
		},
		{
			input: "org.slf4j:slf4j-api:jar:2.0.9:compile",
			want:  Coordinate{GroupID: "org.slf4j", ArtifactID: "slf4j-api", Version: "2.0.9", Type: "jar", Scope: "compile"},
		},
		{
			input: "io.netty:netty-tcnative:jar:linux-x86_64:2.0.61.Final:runtime",
			want:  Coordinate{GroupID: "io.netty", ArtifactID: "netty-tcnative", Version: "2.0.61.Final", Type: "jar", Classifier: "linux-x86_64", Scope: "runtime"},
		},
		{input: "just-a-name", wantErr: true},
		{input: "g:a", wantErr: true},
		{input: "g::1.0", wantErr: true},
		{input: "a:b:c:d:e:f:g", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error", tt.input)
				}
				if !errors.Is(err, errors.ErrCodeInvalidCoordinate) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidCoordinate)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
