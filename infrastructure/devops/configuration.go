package devops

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ServiceConfig is stored as yaml in a single SSM parameter.
type ServiceConfig struct {
	LedgerURL           string `yaml:"ledgerUrl"`
	LedgerSigningSecret string `yaml:"ledgerSigningSecret"` // base64
	SlackInfoChannel    string `yaml:"slackInfoChannel"`
	SlackErrorChannel   string `yaml:"slackErrorChannel"`
}

var (
	once    sync.Once
	cfgVal  *ServiceConfig
	loadErr error
)

// LoadServiceConfig fetches and caches the service configuration.
func LoadServiceConfig(ctx context.Context) (*ServiceConfig, error) {
	once.Do(func() {
		paramName := "vaktdata-service"

		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(awsCfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed ServiceConfig
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		cfgVal = &parsed
	})

	return cfgVal, loadErr
}
