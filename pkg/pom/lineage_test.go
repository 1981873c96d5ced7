package pom

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestLineage(t *testing.T) {
	dir := t.TempDir()
	writePOM(t, filepath.Join(dir, "pom.xml"), `<project>
  <groupId>io.strimzi</groupId><artifactId>strimzi</artifactId><version>0.40.0</version>
</project>`)
	writePOM(t, filepath.Join(dir, "operator", "pom.xml"), `<project>
  <parent><groupId>io.strimzi</groupId><artifactId>strimzi</artifactId><version>0.40.0</version></parent>
  <artifactId>operator</artifactId>
</project>`)
	writePOM(t, filepath.Join(dir, "operator", "cluster-operator", "pom.xml"), `<project>
  <parent><groupId>io.strimzi</groupId><artifactId>operator</artifactId><version>0.40.0</version></parent>
  <artifactId>cluster-operator</artifactId>
</project>`)
	writePOM(t, filepath.Join(dir, "bom", "pom.xml"), `<project>
  <groupId>io.strimzi</groupId><artifactId>bom</artifactId><version>0.40.0</version>
</project>`)
	writePOM(t, filepath.Join(dir, "tools", "pom.xml"), `<project>
  <parent>
    <groupId>io.strimzi</groupId><artifactId>bom</artifactId><version>0.40.0</version>
    <relativePath>../bom</relativePath>
  </parent>
  <artifactId>tools</artifactId>
</project>`)
	writePOM(t, filepath.Join(dir, "external", "pom.xml"), `<project>
  <parent><groupId>org.apache</groupId><artifactId>apache</artifactId><version>31</version></parent>
  <groupId>io.strimzi</groupId><artifactId>external</artifactId>
</project>`)
	writePOM(t, filepath.Join(dir, "detached", "pom.xml"), `<project>
  <parent>
    <groupId>io.strimzi</groupId><artifactId>strimzi</artifactId><version>0.40.0</version>
    <relativePath/>
  </parent>
  <artifactId>detached</artifactId>
</project>`)

	tests := []struct {
		name string
		pom  string
		want []string
	}{
		{"root", "pom.xml", []string{"pom.xml"}},
		{"nested", "operator/cluster-operator/pom.xml",
			[]string{"operator/cluster-operator/pom.xml", "operator/pom.xml", "pom.xml"}},
		{"relative directory", "tools/pom.xml", []string{"tools/pom.xml", "bom/pom.xml"}},
		{"parent from repository", "external/pom.xml", []string{"external/pom.xml"}},
		{"lookup disabled", "detached/pom.xml", []string{"detached/pom.xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lineage(filepath.Join(dir, filepath.FromSlash(tt.pom)))
			if err != nil {
				t.Fatalf("Lineage: %v", err)
			}
			var want []string
			for _, w := range tt.want {
				want = append(want, filepath.Join(dir, filepath.FromSlash(w)))
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Lineage = %v, want %v", got, want)
			}
		})
	}
}

func TestLineageMissing(t *testing.T) {
	if _, err := Lineage(filepath.Join(t.TempDir(), "pom.xml")); err == nil {
		t.Error("Lineage of a missing POM should fail")
	}
}
