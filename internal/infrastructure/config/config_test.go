package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (suite *ConfigTestSuite) TestLoad_NoConfigFile_UsesDefaults() {
	// Act
	cfg, err := Load("")

	// Assert
	suite.Require().NoError(err)
	suite.Equal("PantryWizard", cfg.App.Name)
	suite.Equal(8080, cfg.Server.Port)
	suite.Equal("sqlite", cfg.Database.Driver)
	suite.Equal("./pantry.db", cfg.Database.SQLitePath)
	suite.Equal("ollama", cfg.AI.Mode)
	suite.Equal("http://localhost:11434", cfg.AI.OllamaBaseURL)
	suite.Equal(120*time.Second, cfg.AI.OllamaTimeout)
	suite.Equal("ollama", cfg.Image.Mode)
	suite.Equal("/static/images/placeholder.jpg", cfg.Image.PlaceholderURL)
	suite.Equal(24*time.Hour, cfg.Auth.JWTExpiration)
	suite.False(cfg.Redis.Enabled)
}

func (suite *ConfigTestSuite) TestLoad_ConfigFile_OverridesDefaults() {
	// Arrange
	dir := suite.T().TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  environment: staging
server:
  port: 9000
ai:
  mode: api
  api_url: https://api.openai.com/v1/chat/completions
  api_key: test-key
image:
  mode: placeholder
`)
	suite.Require().NoError(os.WriteFile(path, content, 0o600))

	// Act
	cfg, err := Load(path)

	// Assert
	suite.Require().NoError(err)
	suite.Equal("staging", cfg.App.Environment)
	suite.Equal(9000, cfg.Server.Port)
	suite.Equal("api", cfg.AI.Mode)
	suite.Equal("https://api.openai.com/v1/chat/completions", cfg.AI.APIURL)
	suite.Equal("placeholder", cfg.Image.Mode)
	// Untouched keys keep their defaults
	suite.Equal("PantryWizard", cfg.App.Name)
}

func (suite *ConfigTestSuite) TestLoad_EnvironmentVariable_OverridesFile() {
	// Arrange
	suite.T().Setenv("PANTRYWIZARD_SERVER_PORT", "9100")

	// Act
	cfg, err := Load("")

	// Assert
	suite.Require().NoError(err)
	suite.Equal(9100, cfg.Server.Port)
}

func (suite *ConfigTestSuite) TestValidate_InvalidAIMode_ReturnsError() {
	// Arrange
	cfg, err := Load("")
	suite.Require().NoError(err)
	cfg.AI.Mode = "magic"

	// Act
	err = cfg.Validate()

	// Assert
	suite.Error(err)
	suite.Contains(err.Error(), "ai.mode")
}

func (suite *ConfigTestSuite) TestValidate_ProductionWithDevSecret_ReturnsError() {
	// Arrange
	cfg, err := Load("")
	suite.Require().NoError(err)
	cfg.App.Environment = "production"

	// Act
	err = cfg.Validate()

	// Assert
	suite.Error(err)
	suite.Contains(err.Error(), "jwt_secret")
}

func (suite *ConfigTestSuite) TestValidate_S3WithoutBucket_ReturnsError() {
	// Arrange
	cfg, err := Load("")
	suite.Require().NoError(err)
	cfg.Storage.Provider = "s3"
	cfg.AWS.S3Bucket = ""

	// Act
	err = cfg.Validate()

	// Assert
	suite.Error(err)
	suite.Contains(err.Error(), "s3_bucket")
}

func (suite *ConfigTestSuite) TestGetDSN_FormatsPostgresConnectionString() {
	// Arrange
	cfg, err := Load("")
	suite.Require().NoError(err)
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 5433
	cfg.Database.Username = "wizard"
	cfg.Database.Password = "secret"
	cfg.Database.Database = "pantry"
	cfg.Database.SSLMode = "require"

	// Act
	dsn := cfg.GetDSN()

	// Assert
	suite.Equal("host=db.internal port=5433 user=wizard password=secret dbname=pantry sslmode=require", dsn)
}

func (suite *ConfigTestSuite) TestGetReplicaDSNs_OnePerReplicaHost() {
	// Arrange
	cfg, err := Load("")
	suite.Require().NoError(err)
	cfg.Database.Host = "primary"
	cfg.Database.ReplicaHosts = []string{"replica-1", "replica-2"}
	cfg.Database.Database = "pantry"

	// Act
	dsns := cfg.GetReplicaDSNs()

	// Assert
	suite.Len(dsns, 2)
	suite.Contains(dsns[0], "host=replica-1")
	suite.Contains(dsns[1], "host=replica-2")
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
