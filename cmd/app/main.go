package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/0x5EED/go-voronoi/pkg/logger"
	"github.com/0x5EED/go-voronoi/pkg/points"
	"github.com/0x5EED/go-voronoi/pkg/render"
	"github.com/0x5EED/go-voronoi/pkg/voronoi"
	"github.com/0x5EED/go-voronoi/static"
)

func generateRandSites(n, width, height int) []voronoi.Vertex {
	sites := make([]voronoi.Vertex, n)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < n; i++ {
		sites[i] = voronoi.Vertex{
			X: float64(rng.Intn(width)),
			Y: float64(rng.Intn(height)),
		}
	}
	return sites
}

func generateGridSites(n, width, height int) []voronoi.Vertex {
	sites := make([]voronoi.Vertex, 0, n)

	rows := int(math.Sqrt(float64(n)))
	cols := (n + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if len(sites) == n {
				break
			}
			sites = append(sites, voronoi.Vertex{
				X: xStep/2 + float64(j)*xStep,
				Y: yStep/2 + float64(i)*yStep,
			})
		}
	}
	return sites
}

func prepareScatter(scatter *charts.Scatter) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Voronoi diagram (Fortune)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Width",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Height",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

func diagramToEcharts(sites []voronoi.Vertex, diagram *voronoi.Diagram) *charts.Scatter {
	scatter := charts.NewScatter()

	pts := make([]opts.ScatterData, 0, len(sites))
	for _, site := range sites {
		pts = append(pts, opts.ScatterData{
			Value: []float64{site.X, site.Y},
		})
	}

	prepareScatter(scatter)

	scatter.AddSeries("Sites", pts).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	for _, edge := range diagram.Edges {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
		)

		line.AddSeries("Edges", []opts.LineData{
			{Value: []float64{edge.Va.X, edge.Va.Y}},
			{Value: []float64{edge.Vb.X, edge.Vb.Y}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
			}),
		)

		scatter.Overlap(line)
	}

	return scatter
}

func diagramHandler(w http.ResponseWriter, r *http.Request) {
	width := 1000
	height := 1000
	numSites := 12
	var isRandom bool

	if r.Method == http.MethodPost {
		r.ParseForm()
		width, _ = strconv.Atoi(r.FormValue("width"))
		height, _ = strconv.Atoi(r.FormValue("height"))
		numSites, _ = strconv.Atoi(r.FormValue("sites"))
		isRandom = r.FormValue("random") == "true"
	}

	var sites []voronoi.Vertex
	if isRandom {
		sites = generateRandSites(numSites, width, height)
	} else {
		sites = generateGridSites(numSites, width, height)
	}

	log := logger.New()
	defer log.ClearLogs()

	diagram, err := voronoi.Compute(sites,
		voronoi.WithBoundingBox(voronoi.NewBoundingBox(0, float64(width), 0, float64(height))),
		voronoi.WithLogger(log),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	scatter := diagramToEcharts(sites, diagram)

	fmt.Fprintln(w, static.Part1)

	if err := scatter.Render(w); err != nil {
		fmt.Println("chart render error:", err)
	}

	fmt.Fprintln(w, static.Part2)

	for _, entry := range log.Logs {
		fmt.Fprintln(w, entry)
	}

	fmt.Fprintln(w, static.Part3)
}

func main() {
	in := flag.String("in", "", "read sites from a file with one \"x,y\" pair per line")
	pngOut := flag.String("png", "", "write the diagram as PNG to this path")
	svgOut := flag.String("svg", "", "write the diagram as SVG to this path")
	margin := flag.Float64("margin", 0.1, "margin fraction around the site extent")
	serve := flag.String("serve", ":8080", "address of the interactive viewer")
	flag.Parse()

	if *in != "" {
		if err := export(*in, *pngOut, *svgOut, *margin); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	http.HandleFunc("/", diagramHandler)
	fmt.Printf("serving on http://localhost%s\n", *serve)
	if err := http.ListenAndServe(*serve, nil); err != nil {
		fmt.Fprintln(os.Stderr, "ListenAndServe:", err)
		os.Exit(1)
	}
}

func export(in, pngOut, svgOut string, margin float64) error {
	sites, err := points.ReadFile(in)
	if err != nil {
		return err
	}

	diagram, err := voronoi.Compute(sites, voronoi.WithMargin(margin))
	if err != nil {
		return err
	}

	for _, out := range []string{pngOut, svgOut} {
		if out == "" {
			continue
		}
		if err := render.WriteFile(out, diagram); err != nil {
			return err
		}
		fmt.Println("wrote", out)
	}
	return nil
}
