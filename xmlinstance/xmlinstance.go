package xmlinstance

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/model"
)

// Load parses one <SPInstance> document into a model.Instance. Only the
// job-indexed flow vector variant is supported: every <flowVector> entry
// must carry an explicit job attribute. The original parser's inferred-
// reentrancy variant (no job attribute, operation counts derived from
// jobPlexity) is not implemented; see this module's design notes.
func Load(r io.Reader) (*model.Instance, error) {
	var doc document
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("xmlinstance: decode: %w", err)
	}

	if doc.Jobs.Count <= 0 {
		return nil, ErrMissingJobs
	}

	shop, err := parseShopType(doc.Type)
	if err != nil {
		return nil, err
	}

	in := model.NewInstance(doc.Type, shop)
	if err := loadFlowVector(&doc, in); err != nil {
		return nil, err
	}
	loadJobsOutputOrder(&doc, in)
	loadJobPlexity(&doc, in)
	loadProcessingTimes(&doc, in)
	loadSetupTimes(&doc, in)
	loadDueDates(&doc, in)
	loadAbsoluteDeadlines(&doc, in)

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("xmlinstance: %w", err)
	}
	return in, nil
}

func parseShopType(t string) (model.ShopType, error) {
	switch t {
	case "FixedOrder", "fixed-order", "":
		return model.FixedOrder, nil
	case "FlowShop", "flow-shop":
		return model.FlowShop, nil
	case "JobShop", "job-shop":
		return model.JobShop, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShopType, t)
	}
}

// loadFlowVector rebuilds each job's operation list from its flowVector
// entries, mirroring xmlParser.cpp's loadFlowVector (the job-indexed
// variant): entries are grouped by Job, then ordered by Index to recover
// each job's visit sequence, and MachineOf is populated from Value.
func loadFlowVector(doc *document, in *model.Instance) error {
	byJob := make(map[int][]flowEntry)
	for _, e := range doc.FlowVector.Entries {
		byJob[e.Job] = append(byJob[e.Job], e)
	}

	jobs := make([]int, 0, len(byJob))
	for j := range byJob {
		jobs = append(jobs, j)
	}
	sort.Ints(jobs)

	for _, j := range jobs {
		entries := byJob[j]
		sort.Slice(entries, func(a, b int) bool { return entries[a].Index < entries[b].Index })

		ops := make([]model.Operation, 0, len(entries))
		for i, e := range entries {
			op := model.Operation{Job: model.JobID(j), Op: model.OperationID(i)}
			ops = append(ops, op)
			in.MachineOf[op] = model.MachineID(e.Value)
		}
		in.AddJob(model.JobID(j), ops)
	}
	return nil
}

func loadJobsOutputOrder(doc *document, in *model.Instance) {
	entries := append([]orderEntry(nil), doc.JobsOutputOrder.Entries...)
	sort.Slice(entries, func(a, b int) bool { return entries[a].Position < entries[b].Position })
	for _, e := range entries {
		in.JobsOutputOrder = append(in.JobsOutputOrder, model.JobID(e.Job))
	}
}

// loadJobPlexity ports xmlParser.cpp's loadJobPlexity S/D/integer parsing:
// "S" and "D" map to Simplex/Duplex directly, any other value is parsed
// as an integer Plexity for forward compatibility with future plexity
// levels beyond the two this module implements. An unparseable value
// falls back to Duplex, matching the original's behaviour of treating
// any non-"S" entry as at least two concurrent passes.
func loadJobPlexity(doc *document, in *model.Instance) {
	for _, e := range doc.JobPlexity.Entries {
		job := model.JobID(e.Job)
		machine := model.MachineID(e.Machine)
		plexity := model.Simplex
		switch e.Type {
		case "S", "":
			plexity = model.Simplex
		case "D":
			plexity = model.Duplex
		default:
			if level, err := strconv.Atoi(e.Type); err == nil {
				plexity = model.Plexity(level)
			} else {
				plexity = model.Duplex
			}
		}
		if in.PlexityOf[job] == nil {
			in.PlexityOf[job] = make(map[model.MachineID]model.Plexity)
		}
		in.PlexityOf[job][machine] = plexity
	}
}

func loadProcessingTimes(doc *document, in *model.Instance) {
	if doc.ProcessingTimes.Default != nil {
		in.ProcessingTimes.Default = model.Delay(*doc.ProcessingTimes.Default)
	}
	for _, e := range doc.ProcessingTimes.Entries {
		op := model.Operation{Job: model.JobID(e.Job), Op: model.OperationID(e.Operation)}
		in.ProcessingTimes.Set(op, model.Delay(e.Value))
	}
}

// loadSetupTimes ports xmlParser.cpp's dependent/independent split: a
// setupTimes entry relating two operations of different jobs on the same
// machine is a genuine sequence-dependent setup (TwoKeyTable); an entry
// relating two operations of the SAME job is instead recorded as that
// operation's independent (machine-only) setup time, since within a job
// the "previous operation" is fixed by flow order and carries no
// sequencing choice.
func loadSetupTimes(doc *document, in *model.Instance) {
	if doc.SetupTimesIndependent.Default != nil {
		in.SetupTimesIndependent.Default = model.Delay(*doc.SetupTimesIndependent.Default)
	}
	for _, e := range doc.SetupTimesIndependent.Entries {
		op := model.Operation{Job: model.JobID(e.Job), Op: model.OperationID(e.Operation)}
		in.SetupTimesIndependent.Set(op, model.Delay(e.Value))
	}

	if doc.SetupTimes.Default != nil {
		in.SetupTimes.Default = model.Delay(*doc.SetupTimes.Default)
	}
	for _, e := range doc.SetupTimes.Entries {
		from := model.Operation{Job: model.JobID(e.Job1), Op: model.OperationID(e.Operation1)}
		to := model.Operation{Job: model.JobID(e.Job2), Op: model.OperationID(e.Operation2)}
		if from.Job == to.Job {
			in.SetupTimesIndependent.Set(to, model.Delay(e.Value))
			continue
		}
		in.SetupTimes.Set(from, to, model.Delay(e.Value))
	}
}

// loadDueDates mirrors loadSetupTimes' split, applied to
// relativeDueDates/relativeDueDatesIndependent per loadDueDates in the
// original parser: a same-job pair is an independent (per-operation) due
// date, a cross-job pair is a genuine sequencing-relative due date.
func loadDueDates(doc *document, in *model.Instance) {
	if doc.RelativeDueDatesIndependent.Default != nil {
		in.DueDatesIndependent.Default = model.Delay(*doc.RelativeDueDatesIndependent.Default)
	}
	for _, e := range doc.RelativeDueDatesIndependent.Entries {
		op := model.Operation{Job: model.JobID(e.Job), Op: model.OperationID(e.Operation)}
		in.DueDatesIndependent.Set(op, model.Delay(e.Value))
	}

	if doc.RelativeDueDates.Default != nil {
		in.DueDates.Default = model.Delay(*doc.RelativeDueDates.Default)
	}
	for _, e := range doc.RelativeDueDates.Entries {
		from := model.Operation{Job: model.JobID(e.Job1), Op: model.OperationID(e.Operation1)}
		to := model.Operation{Job: model.JobID(e.Job2), Op: model.OperationID(e.Operation2)}
		if from.Job == to.Job {
			in.DueDatesIndependent.Set(to, model.Delay(e.Value))
			continue
		}
		in.DueDates.Set(from, to, model.Delay(e.Value))
	}
}

func loadAbsoluteDeadlines(doc *document, in *model.Instance) {
	for _, e := range doc.AbsoluteDeadlines.Entries {
		in.AbsoluteDueDates[model.JobID(e.Job)] = model.Delay(e.Value)
	}
}

// Save writes in back out in the same schema Load reads: shop type, job
// count, flow vector, jobs output order, job plexity, processing times
// and absolute deadlines. Setup-time and due-date tables (dependent and
// independent) are not written, and any plexity other than Duplex is
// written as "S", so those fields do not survive a Save/Load round trip.
func Save(w io.Writer, in *model.Instance) error {
	doc := document{Type: in.ShopType.String()}
	doc.Jobs.Count = len(in.JobOrder)

	for _, job := range in.JobOrder {
		for i, op := range in.Jobs[job] {
			doc.FlowVector.Entries = append(doc.FlowVector.Entries, flowEntry{
				Index: i,
				Job:   int(job),
				Value: int(in.MachineOf[op]),
			})
		}
	}

	for i, job := range in.JobsOutputOrder {
		doc.JobsOutputOrder.Entries = append(doc.JobsOutputOrder.Entries, orderEntry{
			Position: i,
			Job:      int(job),
		})
	}

	for job, machines := range in.PlexityOf {
		for machine, plexity := range machines {
			t := "S"
			if plexity == model.Duplex {
				t = "D"
			}
			doc.JobPlexity.Entries = append(doc.JobPlexity.Entries, plexityEntry{
				Job: int(job), Machine: int(machine), Type: t,
			})
		}
	}

	def := int64(in.ProcessingTimes.Default)
	doc.ProcessingTimes.Default = &def
	for op, v := range in.ProcessingTimes.Entries() {
		doc.ProcessingTimes.Entries = append(doc.ProcessingTimes.Entries, struct {
			Job       int   `xml:"j,attr"`
			Operation int   `xml:"op,attr"`
			Value     int64 `xml:"value,attr"`
		}{Job: int(op.Job), Operation: int(op.Op), Value: int64(v)})
	}

	for job, deadline := range in.AbsoluteDueDates {
		doc.AbsoluteDeadlines.Entries = append(doc.AbsoluteDeadlines.Entries, jobValueEntry{
			Job: int(job), Value: int64(deadline),
		})
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("xmlinstance: encode: %w", err)
	}
	return nil
}
