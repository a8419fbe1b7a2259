package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/limaJavier/eligibility/pkg/model"

	"github.com/samber/lo"
)

const (
	executablePath = "../../bin/eligibility"
	KB             = 1024
)

type ResultType int

const (
	resolved ResultType = iota
	failed
)

var (
	resultTypes = map[ResultType]string{
		resolved: "resolved",
		failed:   "failed",
	}
	catalogSizes       = []int{1_000, 10_000, 100_000}
	completedFractions = []float64{0, 0.25, 0.5, 0.9}
)

type TestMetadata struct {
	Catalog           string
	Transcript        string
	Courses           int
	Completed         int
	CompletedFraction float64
}

type BenchmarkResult struct {
	Test          TestMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Groups        int
	Result        ResultType
}

func main() {
	directory, err := os.MkdirTemp("", "eligibility-benchmark")
	if err != nil {
		log.Fatalf("cannot create working directory: %v", err)
	}
	defer os.RemoveAll(directory)

	tests := getTests(directory)
	results := make([]BenchmarkResult, 0, len(tests))

	for _, test := range tests {
		fmt.Printf("Benchmarking catalog of %v courses with %v completed\n", test.Courses, test.Completed)

		duration, maxMemory, cpuPercentage, groups, result := measure(test)

		results = append(results, BenchmarkResult{
			Test:          test,
			Duration:      duration,
			Memory:        maxMemory,
			CpuPercentage: cpuPercentage,
			Groups:        groups,
			Result:        result,
		})
	}

	toCsv(results)
}

// getTests writes a synthetic catalog per size and a transcript per completed fraction into directory
func getTests(directory string) []TestMetadata {
	random := rand.New(rand.NewPCG(1, 2))
	tests := make([]TestMetadata, 0, len(catalogSizes)*len(completedFractions))

	for _, size := range catalogSizes {
		courses := lo.Times(size, func(i int) string { return fmt.Sprintf("CSC%06d", i) })
		catalog, err := model.NewCatalog(lo.Map(courses, func(course string, i int) model.CatalogEntry {
			return model.CatalogEntry{Course: course, Rule: randomRule(random, courses, i)}
		}))
		if err != nil {
			log.Fatalf("cannot build catalog: %v", err)
		}
		catalogFile := filepath.Join(directory, fmt.Sprintf("catalog-%d.json", size))
		writeJson(catalogFile, catalog)

		for _, fraction := range completedFractions {
			completed := courses[:int(float64(size)*fraction)]
			transcriptFile := filepath.Join(directory, fmt.Sprintf("transcript-%d-%v.json", size, fraction))
			writeJson(transcriptFile, model.RawTranscript{CompletedCourses: completed})

			tests = append(tests, TestMetadata{
				Catalog:           catalogFile,
				Transcript:        transcriptFile,
				Courses:           size,
				Completed:         len(completed),
				CompletedFraction: fraction,
			})
		}
	}

	return tests
}

// randomRule draws prerequisites among earlier courses, so completing a prefix of the catalog unlocks the next courses
func randomRule(random *rand.Rand, courses []string, position int) model.CourseRule {
	rule := model.CourseRule{}
	if position > 0 && random.IntN(2) == 0 {
		rule.Prerequisites = []string{courses[random.IntN(position)]}
	}
	if random.IntN(5) == 0 {
		rule.Corequisites = []string{courses[random.IntN(len(courses))]}
	}
	if random.IntN(5) == 0 {
		rule.EitherOf = lo.Uniq([]string{courses[random.IntN(len(courses))], courses[random.IntN(len(courses))]})
	}
	return rule
}

func writeJson(file string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Fatalf("cannot marshal %v: %v", file, err)
	}
	if err := os.WriteFile(file, data, 0666); err != nil {
		log.Fatalf("cannot write %v: %v", file, err)
	}
}

func measure(test TestMetadata) (duration int64, maxMemory float32, cpuPercentage int64, groups int, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "resolve", "--catalog", test.Catalog, "--transcript", test.Transcript, "--output", "json")

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if cmd.ProcessState.ExitCode() != 0 {
		log.Printf("an error occurred during the execution of \"eligibility\" with catalog \"%v\" and transcript \"%v\": %v\n", test.Catalog, test.Transcript, stdErr.String())
		result = failed
	} else {
		var response model.EligibilityResponse
		if err := json.Unmarshal(stdOut.Bytes(), &response); err != nil {
			log.Fatalf("cannot parse output for catalog \"%v\": %v", test.Catalog, err)
		}
		groups = len(response.EligibleCourses)
		result = resolved
	}
	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, groups, result
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Courses", "Completed", "Completed Fraction", "Groups", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			fmt.Sprintf("%d", result.Test.Courses),
			fmt.Sprintf("%d", result.Test.Completed),
			fmt.Sprintf("%.2f", result.Test.CompletedFraction),
			fmt.Sprintf("%d", result.Groups),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / KB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
