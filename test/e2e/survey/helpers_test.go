package survey_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"testing"
	"time"

	"github.com/aussiebroadwan/qasurvey/pkg/surveysdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Shared setup for the survey service end-to-end tests: the image is built
 * once, every test gets its own container.
 */

const (
	testImageName = "qasurvey-test:latest"

	adminEmail      = "root@example.com"
	adminPassword   = "Admin123"
	adminNationalID = "98765432100"
	userPassword    = "Senha123"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building survey service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up survey service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/survey/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupSurveyContainer starts the service with env merged over the test
// defaults and returns a client pointed at it.
func setupSurveyContainer(t *testing.T, env map[string]string) *surveysdk.Client {
	t.Helper()
	ctx := context.Background()

	containerEnv := map[string]string{
		"ENV":                      "test",
		"LOG_LEVEL":                "info",
		"LOG_FORMAT":               "json",
		"SURVEY_TOKEN_ALGORITHM":   "EdDSA",
		"SURVEY_ADMIN_NAME":        "Root",
		"SURVEY_ADMIN_EMAIL":       adminEmail,
		"SURVEY_ADMIN_PASSWORD":    adminPassword,
		"SURVEY_ADMIN_NATIONAL_ID": adminNationalID,
	}
	for k, v := range env {
		containerEnv[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          containerEnv,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return surveysdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// signup registers an account numbered n and logs it in.
func signup(t *testing.T, c *surveysdk.Client, n int, profile string) *surveysdk.Session {
	t.Helper()

	email := "user" + strconv.Itoa(n) + "@example.com"
	_, err := c.Register(t.Context(), surveysdk.RegisterRequest{
		Name:       "User " + strconv.Itoa(n),
		Email:      email,
		NationalID: fmt.Sprintf("1234567890%d", n%10),
		Password:   userPassword,
		Profile:    profile,
	})
	require.NoError(t, err)

	s, err := c.Login(t.Context(), email, userPassword)
	require.NoError(t, err)
	return s
}

func assertHealthy(t *testing.T, health *surveysdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
