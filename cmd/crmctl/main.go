package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yuxdigital/yux-crm/internal/dashboard"
	"github.com/yuxdigital/yux-crm/internal/entity"
)

// crmctl é o painel em modo terminal: lista, filtra, importa e exporta
// clientes pela mesma camada que a interface web usa.

var (
	apiURL      string
	sessionPath string

	session  *dashboard.SessionStore
	gateway  *dashboard.Gateway
	notifier = dashboard.LogNotifier{}
)

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "CLI do CRM da YUX Digital",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		session = dashboard.NewSessionStore(sessionPath)
		if err := session.Hydrate(); err != nil {
			return fmt.Errorf("erro ao carregar sessão: %w", err)
		}

		gateway = dashboard.NewGateway(apiURL, session, notifier)
		gateway.OnSessionExpired = func() {
			fmt.Fprintln(os.Stderr, "Sessão expirada. Rode `crmctl login` novamente.")
		}
		return nil
	},
	SilenceUsage: true,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Autentica no backend e grava a sessão",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		sess, err := gateway.Login(context.Background(), email, password)
		if err != nil {
			return fmt.Errorf("login falhou: %w", err)
		}

		fmt.Printf("Logado como %s (%s)\n", sess.User.Name, sess.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Encerra a sessão",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := gateway.Logout(context.Background()); err != nil {
			return err
		}
		fmt.Println("Sessão encerrada.")
		return nil
	},
}

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Operações sobre a carteira de clientes",
}

func filtersFromFlags(cmd *cobra.Command) entity.ClientFilters {
	var filters entity.ClientFilters
	filters.Sector, _ = cmd.Flags().GetString("sector")
	filters.Sizes, _ = cmd.Flags().GetStringSlice("sizes")
	filters.LeadSources, _ = cmd.Flags().GetStringSlice("lead-sources")
	filters.Statuses, _ = cmd.Flags().GetStringSlice("statuses")
	filters.StartDate, _ = cmd.Flags().GetString("start-date")
	filters.EndDate, _ = cmd.Flags().GetString("end-date")

	if cmd.Flags().Changed("min-value") {
		v, _ := cmd.Flags().GetFloat64("min-value")
		filters.MinValue = &v
	}
	if cmd.Flags().Changed("max-value") {
		v, _ := cmd.Flags().GetFloat64("max-value")
		filters.MaxValue = &v
	}
	return filters
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("sector", "", "setor do cliente")
	cmd.Flags().StringSlice("sizes", nil, "portes (small,medium,large)")
	cmd.Flags().StringSlice("lead-sources", nil, "origens do lead")
	cmd.Flags().StringSlice("statuses", nil, "status (active,inactive,prospect,churned)")
	cmd.Flags().Float64("min-value", 0, "valor mínimo de lifetime value")
	cmd.Flags().Float64("max-value", 0, "valor máximo de lifetime value")
	cmd.Flags().String("start-date", "", "cadastrados a partir de (YYYY-MM-DD)")
	cmd.Flags().String("end-date", "", "cadastrados até (YYYY-MM-DD)")
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista clientes com busca, filtros e paginação",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		search, _ := cmd.Flags().GetString("search")
		filters := filtersFromFlags(cmd)

		controller := dashboard.NewClientListController(gateway, notifier)
		controller.SetLimit(limit)
		if search != "" {
			controller.SetSearch(context.Background(), search)
		}
		if err := controller.ApplyFilters(context.Background(), filters); err != nil {
			return err
		}
		if page > 1 {
			if err := controller.FetchPage(context.Background(), page); err != nil {
				return err
			}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "EMPRESA\tCONTATO\tEMAIL\tPORTE\tSTATUS\tPROJETOS\tVALOR")
		for _, c := range controller.Rows() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\tR$ %.2f\n",
				c.CompanyName, c.ContactName, c.Email, c.Size, c.Status,
				c.ProjectsCount, c.TotalValue)
		}
		w.Flush()

		fmt.Printf("\nPágina %d de %d (%d clientes", controller.Page(), controller.TotalPages(), controller.Total())
		if n := controller.ActiveFilterCount(); n > 0 {
			fmt.Printf(", %d filtro(s) ativo(s)", n)
		}
		fmt.Println(")")
		return nil
	},
}

var clientsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Estatísticas da carteira",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := gateway.ClientStats(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Clientes:        %d (%d ativos)\n", stats.TotalClients, stats.ActiveClients)
		fmt.Printf("Receita total:   R$ %.2f\n", stats.TotalRevenue)
		fmt.Printf("Ticket médio:    R$ %.2f\n", stats.AverageValue)
		fmt.Printf("Novos no mês:    %d\n", stats.NewClientsThisMonth)
		fmt.Printf("Taxa conversão:  %.1f%%\n", stats.ConversionRate)
		return nil
	},
}

var clientsImportCmd = &cobra.Command{
	Use:   "import <arquivo>",
	Short: "Importa clientes de um CSV ou Excel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		importer := dashboard.NewImporter(gateway)
		if err := importer.SelectFile(args[0]); err != nil {
			return err
		}

		result, err := importer.Upload(context.Background())
		if err != nil {
			return err
		}

		for _, line := range dashboard.FormatResult(result) {
			fmt.Println(line)
		}
		if !result.Success {
			os.Exit(1)
		}
		return nil
	},
}

var clientsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta a carteira filtrada para CSV ou Excel",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		dir, _ := cmd.Flags().GetString("output-dir")
		filters := filtersFromFlags(cmd)

		exporter := dashboard.NewExporter(gateway)
		exporter.Dir = dir

		var path string
		var err error
		switch strings.ToLower(format) {
		case "csv":
			path, err = exporter.ExportCSV(context.Background(), filters)
		case "excel", "xlsx":
			path, err = exporter.ExportExcel(context.Background(), filters)
		default:
			return fmt.Errorf("formato inválido: %s (use csv ou excel)", format)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Exportado para %s\n", path)
		return nil
	},
}

var clientsTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Baixa a planilha modelo de importação",
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter := dashboard.NewExporter(gateway)
		exporter.Dir, _ = cmd.Flags().GetString("output-dir")

		path, err := exporter.SaveTemplate(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Modelo gravado em %s\n", path)
		return nil
	},
}

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Campanhas de marketing",
}

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista campanhas",
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, _ := cmd.Flags().GetString("platform")
		status, _ := cmd.Flags().GetString("status")

		page, err := gateway.ListCampaigns(context.Background(), dashboard.ListParams{}, platform, status)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NOME\tPLATAFORMA\tSTATUS\tGASTO\tCONVERSÕES\tROAS")
		for _, c := range page.Campaigns {
			fmt.Fprintf(w, "%s\t%s\t%s\tR$ %.2f\t%d\t%.2f\n",
				c.Name, c.Platform, c.Status, c.Spent, c.Conversions, c.ROAS)
		}
		return w.Flush()
	},
}

var campaignsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sincroniza as campanhas com a plataforma de ads",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := gateway.SyncCampaigns(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%d campanha(s) sincronizada(s)\n", count)
		return nil
	},
}

var leadsListCmd = &cobra.Command{
	Use:   "leads",
	Short: "Lista leads do funil",
	RunE: func(cmd *cobra.Command, args []string) error {
		stage, _ := cmd.Flags().GetString("stage")
		search, _ := cmd.Flags().GetString("search")

		page, err := gateway.ListLeads(context.Background(), dashboard.ListParams{Search: search}, stage, "")
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NOME\tEMAIL\tEMPRESA\tORIGEM\tESTÁGIO")
		for _, l := range page.Leads {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", l.Name, l.Email, l.Company, l.Source, l.Stage)
		}
		return w.Flush()
	},
}

func main() {
	godotenv.Load()

	defaultAPI := os.Getenv("CRM_API_URL")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080/api"
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "URL base da API")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "caminho do arquivo de sessão")

	loginCmd.Flags().String("email", "", "email de acesso")
	loginCmd.Flags().String("password", "", "senha")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	clientsListCmd.Flags().Int("page", 1, "página (1-based)")
	clientsListCmd.Flags().Int("limit", 10, "itens por página")
	clientsListCmd.Flags().String("search", "", "busca por empresa, contato ou email")
	addFilterFlags(clientsListCmd)

	clientsExportCmd.Flags().String("format", "csv", "csv ou excel")
	clientsExportCmd.Flags().String("output-dir", ".", "diretório de destino")
	addFilterFlags(clientsExportCmd)

	clientsTemplateCmd.Flags().String("output-dir", ".", "diretório de destino")

	campaignsListCmd.Flags().String("platform", "", "GOOGLE ou META")
	campaignsListCmd.Flags().String("status", "", "ACTIVE, PAUSED ou ENDED")

	leadsListCmd.Flags().String("stage", "", "estágio do funil")
	leadsListCmd.Flags().String("search", "", "busca por nome ou email")

	clientsCmd.AddCommand(clientsListCmd, clientsStatsCmd, clientsImportCmd, clientsExportCmd, clientsTemplateCmd)
	campaignsCmd.AddCommand(campaignsListCmd, campaignsSyncCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd, clientsCmd, campaignsCmd, leadsListCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
