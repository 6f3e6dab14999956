package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_Layout(t *testing.T) {
	f := New("shop")
	f.AddNetwork("shop-net")
	f.AddVolume("db_data")
	f.AddService("db", Service{
		Image:       "postgres:16-alpine",
		Environment: map[string]string{"POSTGRES_DB": "shop"},
		Volumes:     []string{"db_data:/var/lib/postgresql/data"},
		Networks:    []string{"shop-net"},
	})
	f.AddService("api", Service{
		Build:     &Build{Context: "."},
		Ports:     []string{"3000:3000"},
		DependsOn: []string{"db"},
		Networks:  []string{"shop-net"},
	})

	out, err := f.Marshal()
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "name: shop\nservices:\n  api:\n"), s)
	assert.Contains(t, s, "    build:\n      context: .\n")
	assert.Contains(t, s, "    depends_on:\n      - db\n")
	assert.Contains(t, s, "volumes:\n  db_data: {}\n")
	assert.Contains(t, s, "networks:\n  shop-net:\n    driver: bridge\n")
	assert.Less(t, strings.Index(s, "  api:"), strings.Index(s, "  db:"), "services sorted by name")
}

func TestParse_RoundTripsServices(t *testing.T) {
	src := `
services:
  web:
    image: nginx:alpine
    ports: ["8080:80"]
`
	f, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Contains(t, f.Services, "web")
	assert.Equal(t, []string{"8080:80"}, f.Services["web"].Ports)

	_, err = Parse([]byte("services: ["))
	assert.Error(t, err)
}
