//go:build highs_cgo

package highs

/*
#cgo pkg-config: highs

#include <stdlib.h>
#include <stdint.h>
#include "highs_c_api.h"
*/
import "C"
import (
	"context"
	"math"
	"time"
	"unsafe"

	"github.com/bartolsthoorn/highslp/internal/logging"
)

// NativeEngine solves models with the HiGHS C library, linked through
// pkg-config. It handles LP and MIP models. Each solve runs on a fresh
// HiGHS instance that receives the stored, user-scaled Lp column-wise, so
// HiGHS' own user scale options stay at zero.
type NativeEngine struct{}

// Solve implements Engine. The context is checked before and after the
// solve; its deadline becomes the HiGHS time limit.
func (NativeEngine) Solve(ctx context.Context, lp *Lp, opts Options) (*Result, error) {
	const op = "NativeEngine.Solve"
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ptr := C.Highs_create()
	if ptr == nil {
		return nil, newErrorMsg(op, "failed to create HiGHS instance")
	}
	defer C.Highs_destroy(ptr)

	timeLimit := opts.TimeLimit
	if deadline, ok := ctx.Deadline(); ok {
		timeLimit = math.Min(timeLimit, time.Until(deadline).Seconds())
	}
	if err := setNativeOptions(ptr, opts, timeLimit); err != nil {
		return nil, err
	}
	if err := passLp(ptr, lp); err != nil {
		return nil, err
	}

	status := Status(C.Highs_run(ptr))
	if status == StatusError {
		return nil, newError(op, status)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	modelStatus := modelStatusFromC(C.Highs_getModelStatus(ptr))
	sol := nativeSolution(ptr, lp.NumCol, lp.NumRow)
	sol.Status = modelStatus

	info := invalidInfo()
	info.ObjectiveFunctionValue = nativeFloatInfo(ptr, "objective_function_value")
	info.PrimalSolutionStatus = SolutionStatus(nativeIntInfo(ptr, "primal_solution_status"))
	info.DualSolutionStatus = SolutionStatus(nativeIntInfo(ptr, "dual_solution_status"))
	info.NumPrimalInfeasibilities = nativeIntInfo(ptr, "num_primal_infeasibilities")
	info.MaxPrimalInfeasibility = nativeFloatInfo(ptr, "max_primal_infeasibility")
	info.SumPrimalInfeasibilities = nativeFloatInfo(ptr, "sum_primal_infeasibilities")
	info.NumDualInfeasibilities = nativeIntInfo(ptr, "num_dual_infeasibilities")
	info.MaxDualInfeasibility = nativeFloatInfo(ptr, "max_dual_infeasibility")
	info.SumDualInfeasibilities = nativeFloatInfo(ptr, "sum_dual_infeasibilities")
	sol.ValueValid = info.PrimalSolutionStatus != SolutionStatusNone
	sol.DualValid = info.DualSolutionStatus != SolutionStatusNone
	sol.Objective = info.ObjectiveFunctionValue

	logging.Log().V(logging.TRACE).Info("HiGHS run finished", "status", modelStatus.String())
	return &Result{Status: modelStatus, Solution: sol, Info: info}, nil
}

func setNativeOptions(ptr unsafe.Pointer, opts Options, timeLimit float64) error {
	var output C.HighsInt
	if opts.OutputFlag {
		output = 1
	}
	if err := setNativeBool(ptr, OptionOutputFlag, output); err != nil {
		return err
	}
	floats := map[string]float64{
		OptionTimeLimit:                  math.Max(timeLimit, 0),
		OptionMIPAbsGap:                  opts.MIPAbsGap,
		OptionMIPRelGap:                  opts.MIPRelGap,
		OptionPrimalFeasibilityTolerance: opts.PrimalFeasibilityTolerance,
		OptionDualFeasibilityTolerance:   opts.DualFeasibilityTolerance,
	}
	for name, value := range floats {
		cName := C.CString(name)
		status := Status(C.Highs_setDoubleOptionValue(ptr, cName, C.double(value)))
		C.free(unsafe.Pointer(cName))
		if err := newError("SetFloatOption", status); err != nil {
			return err
		}
	}
	cName := C.CString(OptionPresolve)
	defer C.free(unsafe.Pointer(cName))
	cVal := C.CString(opts.Presolve)
	defer C.free(unsafe.Pointer(cVal))
	status := Status(C.Highs_setStringOptionValue(ptr, cName, cVal))
	return newError("SetStringOption", status)
}

func setNativeBool(ptr unsafe.Pointer, name string, value C.HighsInt) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	status := Status(C.Highs_setBoolOptionValue(ptr, cName, value))
	return newError("SetBoolOption", status)
}

// passLp hands the column-wise matrix of lp to HiGHS in one call.
func passLp(ptr unsafe.Pointer, lp *Lp) error {
	a := lp.AMatrix.Clone()
	a.ensureColwise()
	numNz := a.NumNz()

	cAStart := make([]C.HighsInt, len(a.Start))
	for i, v := range a.Start {
		cAStart[i] = C.HighsInt(v)
	}
	cAIndex := make([]C.HighsInt, numNz)
	for i, v := range a.Index[:numNz] {
		cAIndex[i] = C.HighsInt(v)
	}

	var pIntegrality *C.HighsInt
	if len(lp.Integrality) > 0 {
		cIntegrality := make([]C.HighsInt, len(lp.Integrality))
		for i, vt := range lp.Integrality {
			cIntegrality[i] = vt.toC()
		}
		pIntegrality = &cIntegrality[0]
	}

	var pColCost, pColLower, pColUpper *C.double
	var pRowLower, pRowUpper *C.double
	var pAStart, pAIndex *C.HighsInt
	var pAValue *C.double
	if lp.NumCol > 0 {
		pColCost = (*C.double)(&lp.ColCost[0])
		pColLower = (*C.double)(&lp.ColLower[0])
		pColUpper = (*C.double)(&lp.ColUpper[0])
		pAStart = &cAStart[0]
	}
	if lp.NumRow > 0 {
		pRowLower = (*C.double)(&lp.RowLower[0])
		pRowUpper = (*C.double)(&lp.RowUpper[0])
	}
	if numNz > 0 {
		pAIndex = &cAIndex[0]
		pAValue = (*C.double)(&a.Value[0])
	}

	status := Status(C.Highs_passLp(ptr,
		C.HighsInt(lp.NumCol), C.HighsInt(lp.NumRow), C.HighsInt(numNz),
		C.kHighsMatrixFormatColwise,
		C.HighsInt(lp.Sense), C.double(lp.Offset),
		pColCost, pColLower, pColUpper,
		pRowLower, pRowUpper,
		pAStart, pAIndex, pAValue))
	if err := newError("PassLp", status); err != nil {
		return err
	}
	if pIntegrality != nil {
		status = Status(C.Highs_changeColsIntegralityByRange(ptr,
			0, C.HighsInt(lp.NumCol-1), pIntegrality))
		return newError("SetIntegrality", status)
	}
	return nil
}

func nativeSolution(ptr unsafe.Pointer, numCol, numRow int) *Solution {
	colValue := make([]float64, numCol)
	colDual := make([]float64, numCol)
	rowValue := make([]float64, numRow)
	rowDual := make([]float64, numRow)

	var pColValue, pColDual, pRowValue, pRowDual *C.double
	if numCol > 0 {
		pColValue = (*C.double)(&colValue[0])
		pColDual = (*C.double)(&colDual[0])
	}
	if numRow > 0 {
		pRowValue = (*C.double)(&rowValue[0])
		pRowDual = (*C.double)(&rowDual[0])
	}
	C.Highs_getSolution(ptr, pColValue, pColDual, pRowValue, pRowDual)

	sol := &Solution{
		ColValues: colValue,
		ColDuals:  colDual,
		RowValues: rowValue,
		RowDuals:  rowDual,
	}

	// Try to get basis info
	if numCol > 0 && numRow > 0 {
		colBasis := make([]C.HighsInt, numCol)
		rowBasis := make([]C.HighsInt, numRow)
		if Status(C.Highs_getBasis(ptr, &colBasis[0], &rowBasis[0])) == StatusOK {
			sol.ColBasis = make([]BasisStatus, numCol)
			sol.RowBasis = make([]BasisStatus, numRow)
			for i, b := range colBasis {
				sol.ColBasis[i] = basisStatusFromC(b)
			}
			for i, b := range rowBasis {
				sol.RowBasis[i] = basisStatusFromC(b)
			}
		}
	}
	return sol
}

func nativeIntInfo(ptr unsafe.Pointer, name string) int {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	var val C.HighsInt
	if Status(C.Highs_getIntInfoValue(ptr, cName, &val)) == StatusError {
		return IllegalInfeasibilityCount
	}
	return int(val)
}

func nativeFloatInfo(ptr unsafe.Pointer, name string) float64 {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	var val C.double
	if Status(C.Highs_getDoubleInfoValue(ptr, cName, &val)) == StatusError {
		return IllegalInfeasibilityMeasure()
	}
	return float64(val)
}

func (v VariableType) toC() C.HighsInt {
	switch v {
	case Continuous:
		return C.kHighsVarTypeContinuous
	case Integer:
		return C.kHighsVarTypeInteger
	case SemiContinuous:
		return C.kHighsVarTypeSemiContinuous
	case SemiInteger:
		return C.kHighsVarTypeSemiInteger
	case ImplicitInteger:
		return C.kHighsVarTypeImplicitInteger
	default:
		return C.kHighsVarTypeContinuous
	}
}

func modelStatusFromC(status C.HighsInt) ModelStatus {
	switch status {
	case C.kHighsModelStatusNotset:
		return ModelStatusNotSet
	case C.kHighsModelStatusLoadError:
		return ModelStatusLoadError
	case C.kHighsModelStatusModelError:
		return ModelStatusModelError
	case C.kHighsModelStatusPresolveError:
		return ModelStatusPresolveError
	case C.kHighsModelStatusSolveError:
		return ModelStatusSolveError
	case C.kHighsModelStatusPostsolveError:
		return ModelStatusPostsolveError
	case C.kHighsModelStatusModelEmpty:
		return ModelStatusModelEmpty
	case C.kHighsModelStatusOptimal:
		return ModelStatusOptimal
	case C.kHighsModelStatusInfeasible:
		return ModelStatusInfeasible
	case C.kHighsModelStatusUnboundedOrInfeasible:
		return ModelStatusUnboundedOrInfeasible
	case C.kHighsModelStatusUnbounded:
		return ModelStatusUnbounded
	case C.kHighsModelStatusObjectiveBound:
		return ModelStatusObjectiveBound
	case C.kHighsModelStatusObjectiveTarget:
		return ModelStatusObjectiveTarget
	case C.kHighsModelStatusTimeLimit:
		return ModelStatusTimeLimit
	case C.kHighsModelStatusIterationLimit:
		return ModelStatusIterationLimit
	default:
		return ModelStatusUnknown
	}
}

func basisStatusFromC(status C.HighsInt) BasisStatus {
	switch status {
	case C.kHighsBasisStatusLower:
		return BasisStatusLower
	case C.kHighsBasisStatusBasic:
		return BasisStatusBasic
	case C.kHighsBasisStatusUpper:
		return BasisStatusUpper
	case C.kHighsBasisStatusZero:
		return BasisStatusZero
	case C.kHighsBasisStatusNonbasic:
		return BasisStatusNonbasic
	default:
		return BasisStatusLower
	}
}
