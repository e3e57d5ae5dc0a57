// SPDX-License-Identifier: MPL-2.0

// Package task defines the provisioning tasks a toilfile can request.
//
// Each task reads its inputs from the resolved settings namespace, issues
// commands through a runtime.Executor and downloads through a
// fetch.Fetcher. Tasks declare the tasks they build on; a Registry orders
// any requested subset so that prerequisites run first, without pulling in
// prerequisites that were not requested.
package task
