package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HACKWAVE2025/B54/internal/analysis/prompts"
	"github.com/HACKWAVE2025/B54/internal/services"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a single structured analysis and print the JSON result",
}

var analyzeFlags struct {
	reportType string
	text       string
	image      string
	language   string
	location   string
}

var analyzeMedicalCmd = &cobra.Command{
	Use:   "medical",
	Short: "Analyze a medical report from text and/or an image",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		att, err := readImage(analyzeFlags.image)
		if err != nil {
			return err
		}
		return withApp(cmd, func(svc services.AnalysisService) (any, error) {
			return svc.AnalyzeMedical(cmd.Context(), services.MedicalRequest{
				ReportText: analyzeFlags.text,
				ReportType: analyzeFlags.reportType,
				Language:   analyzeFlags.language,
				Attachment: att,
			})
		})
	},
}

var analyzeMedicineCmd = &cobra.Command{
	Use:   "medicine <name>",
	Short: "Explain a medicine's uses, ingredients and side effects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(svc services.AnalysisService) (any, error) {
			return svc.AnalyzeMedicine(cmd.Context(), args[0], analyzeFlags.language)
		})
	},
}

var analyzeOrganCmd = &cobra.Command{
	Use:   "organ <organ>",
	Short: "Describe an organ and its common diseases",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(svc services.AnalysisService) (any, error) {
			return svc.OrganInfo(cmd.Context(), args[0], analyzeFlags.language)
		})
	},
}

var analyzeFacilitiesCmd = &cobra.Command{
	Use:   "facilities <type>",
	Short: "List the top three facilities of a type near --location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(svc services.AnalysisService) (any, error) {
			return svc.FindFacilities(cmd.Context(), analyzeFlags.location, args[0], analyzeFlags.language)
		})
	},
}

var analyzeTipCmd = &cobra.Command{
	Use:   "tip <Recipe|Workout|Mindfulness>",
	Short: "Generate a wellness tip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(svc services.AnalysisService) (any, error) {
			return svc.WellnessTip(cmd.Context(), args[0], analyzeFlags.language)
		})
	},
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeFlags.language, "language", "", "response language (default English)")

	analyzeMedicalCmd.Flags().StringVar(&analyzeFlags.reportType, "type", "", `report type, e.g. "ECG" or "Kidney Report"`)
	analyzeMedicalCmd.Flags().StringVar(&analyzeFlags.text, "text", "", "report text")
	analyzeMedicalCmd.Flags().StringVar(&analyzeFlags.image, "image", "", "path to a report image")

	analyzeFacilitiesCmd.Flags().StringVar(&analyzeFlags.location, "location", "", "place name or lat,lng")
	_ = analyzeFacilitiesCmd.MarkFlagRequired("location")

	analyzeCmd.AddCommand(analyzeMedicalCmd, analyzeMedicineCmd, analyzeOrganCmd, analyzeFacilitiesCmd, analyzeTipCmd)
}

func withApp(cmd *cobra.Command, run func(services.AnalysisService) (any, error)) error {
	application, err := loadApp(cmd.Context())
	if err != nil {
		return err
	}
	defer application.Close()

	out, err := run(application.Services.Analysis)
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func readImage(path string) (*prompts.Attachment, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return prompts.NewAttachment(data, "")
}
