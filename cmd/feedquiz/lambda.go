package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/pders01/feedquiz/internal/interaction"
	"github.com/pders01/feedquiz/internal/pipeline"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as an AWS Lambda function",
}

var lambdaPipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Handle scheduled EventBridge invocations by running the pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.pipeline(cmd.Context())
		if err != nil {
			return err
		}
		lambda.Start(pipeline.LambdaHandler(p, a.loc))
		return nil
	},
}

var lambdaInteractionCmd = &cobra.Command{
	Use:   "interaction",
	Short: "Handle API Gateway Slack interaction callbacks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		lambda.Start(interaction.LambdaHandler(a.interactionHandler()))
		return nil
	},
}

func init() {
	lambdaCmd.AddCommand(lambdaPipelineCmd)
	lambdaCmd.AddCommand(lambdaInteractionCmd)
}
