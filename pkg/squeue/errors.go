/*
 Licensed to the Apache Software Foundation (ASF) under one
 or more contributor license agreements.  See the NOTICE file
 distributed with this work for additional information
 regarding copyright ownership.  The ASF licenses this file
 to you under the Apache License, Version 2.0 (the
 "License"); you may not use this file except in compliance
 with the License.  You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package squeue

import "errors"

var (
	// ErrSchedulerNotFound returned when no squeue executable exists on the PATH.
	// This is fatal: the monitor can never produce a queue without it.
	ErrSchedulerNotFound = errors.New("squeue executable not found in PATH")
	// ErrQueryFailed returned when invoking the scheduler produced no usable output
	// (non-zero exit, timeout, transport error). Recoverable, the poll loop continues.
	ErrQueryFailed = errors.New("scheduler query failed")
	// ErrMalformedOutput returned when the scheduler produced bytes that do not
	// parse as a JSON document. Recoverable, same as a failed query.
	ErrMalformedOutput = errors.New("scheduler output is not valid JSON")
)
